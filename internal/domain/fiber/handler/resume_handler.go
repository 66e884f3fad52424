package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	filename, data, ok, err := h.readFile(c, "file")
	if !ok {
		return err
	}

	resume, err := h.uc.Upload(c.UserContext(), actorFrom(c), filename, data)
	if err != nil {
		return failWith(c, "failed to process resume", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload resume",
		Data:    dto.NewResumeDTO(resume),
	})
}

// readFile validates the multipart field and returns its bytes. When ok is
// false the error response has already been written and err is its result.
func (h *ResumeHandler) readFile(c *fiber.Ctx, fieldName string) (filename string, data []byte, ok bool, err error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", nil, false, badRequest(c, fmt.Sprintf("%s file is required", fieldName), err)
	}
	if file.Size > maxUploadSize {
		return "", nil, false, badRequest(c, fmt.Sprintf("%s file size is too large (max 5MB)", fieldName), nil)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", nil, false, badRequest(c, fmt.Sprintf("unsupported %s file type %q, only PDF is accepted", fieldName, ext), nil)
	}

	f, err := file.Open()
	if err != nil {
		return "", nil, false, util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot read %s file", fieldName),
		}, err)
	}
	defer f.Close()

	data, err = io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return "", nil, false, util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot read %s file", fieldName),
		}, err)
	}
	return filepath.Base(file.Filename), data, true, nil
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	resumes, pagination, err := h.uc.List(c.UserContext(), actorFrom(c), usecase.ResumeListParams{
		Skill:    c.Query("skill"),
		Name:     c.Query("name"),
		Email:    c.Query("email"),
		Page:     c.QueryInt("page"),
		PageSize: c.QueryInt("page_size"),
	})
	if err != nil {
		return failWith(c, "failed to list resumes", err)
	}

	data := make([]dto.ResumeDTO, len(resumes))
	for i := range resumes {
		data[i] = dto.NewResumeDTO(&resumes[i])
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resumes",
		Data:       data,
		Pagination: pagination,
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid resume id", err)
	}

	resume, err := h.uc.Get(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return failWith(c, "failed to get resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    dto.NewResumeDTO(resume),
	})
}
