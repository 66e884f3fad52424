package handler

import (
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc *usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc *usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var resumeID *uuid.UUID
	if raw := c.Query("resume_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid resume_id", err)
		}
		resumeID = &id
	}

	ranked, err := h.uc.Recommend(c.UserContext(), actorFrom(c), resumeID)
	if err != nil {
		return failWith(c, "failed to get recommendations", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get recommendations",
		Data:    dto.NewRecommendationDTOs(ranked),
	})
}
