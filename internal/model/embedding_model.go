package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Embedding caches the vector of a text for one model. Hash is the hex
// SHA-256 of model and text.
type Embedding struct {
	Hash      string          `gorm:"primaryKey;type:char(64)"`
	Model     string          `gorm:"type:varchar(100)"`
	Vector    pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time
}

func (e *Embedding) TableName() string {
	return "embeddings"
}
