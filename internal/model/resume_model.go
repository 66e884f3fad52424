package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resume struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerEmail     string    `gorm:"index" json:"owner_email"`
	Filename       string    `json:"filename"`
	RawText        string    `gorm:"type:text" json:"raw_text"`
	ExtractedName  *string   `json:"extracted_name"`
	ExtractedEmail *string   `json:"extracted_email"`
	ExtractedPhone *string   `json:"extracted_phone"`
	Skills         []string  `gorm:"type:jsonb;serializer:json" json:"skills"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

func (r *Resume) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
