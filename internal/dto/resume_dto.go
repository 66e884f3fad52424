package dto

import (
	"time"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/google/uuid"
)

type ResumeDTO struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Owner     string    `json:"owner"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Skills    []string  `json:"skills"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

const summaryChars = 500

func NewResumeDTO(r *model.Resume) ResumeDTO {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	summary := []rune(r.RawText)
	if len(summary) > summaryChars {
		summary = summary[:summaryChars]
	}
	return ResumeDTO{
		ID:        r.ID,
		Filename:  r.Filename,
		Owner:     r.OwnerEmail,
		Name:      r.ExtractedName,
		Email:     r.ExtractedEmail,
		Phone:     r.ExtractedPhone,
		Skills:    skills,
		Summary:   string(summary),
		CreatedAt: r.CreatedAt,
	}
}
