package dto

import (
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/google/uuid"
)

type JobDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ExternalID  string    `json:"external_id"`
}

func NewJobDTO(j model.Job) JobDTO {
	return JobDTO{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		ExternalID:  j.ExternalID,
	}
}

type RefreshJobsRequest struct {
	Query string `json:"query"`
}

type RecommendationDTO struct {
	Title      string  `json:"title"`
	Company    string  `json:"company"`
	Location   string  `json:"location"`
	ExternalID string  `json:"external_id"`
	Score      float64 `json:"score"`
}

func NewRecommendationDTOs(ranked []matcher.Ranked[model.Job]) []RecommendationDTO {
	out := make([]RecommendationDTO, len(ranked))
	for i, r := range ranked {
		out[i] = RecommendationDTO{
			Title:      r.Item.Title,
			Company:    r.Item.Company,
			Location:   r.Item.Location,
			ExternalID: r.Item.ExternalID,
			Score:      r.DisplayScore,
		}
	}
	return out
}
