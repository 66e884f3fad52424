package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is one listing of the job corpus. All rows of a corpus share the
// BatchID of the refresh that inserted them.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID     uuid.UUID `gorm:"type:uuid;index" json:"batch_id"`
	Position    int       `json:"-"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	ExternalID  string    `json:"external_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// MatchText is the text a job is embedded with. Listings without a
// description fall back to their title.
func (j *Job) MatchText() string {
	if j.Description != "" {
		return j.Description
	}
	return j.Title
}
