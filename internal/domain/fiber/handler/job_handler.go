package handler

import (
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshJobsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body", err)
		}
	}

	result, err := h.uc.Refresh(c.UserContext(), req.Query)
	if err != nil {
		return failWith(c, "failed to refresh jobs", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success refresh jobs",
		Data:    result,
	})
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, pagination, err := h.uc.List(c.UserContext(), c.QueryInt("page"), c.QueryInt("page_size"))
	if err != nil {
		return failWith(c, "failed to list jobs", err)
	}

	data := make([]dto.JobDTO, len(jobs))
	for i, j := range jobs {
		data[i] = dto.NewJobDTO(j)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       data,
		Pagination: pagination,
	})
}
