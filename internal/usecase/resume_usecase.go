package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/fadilmartias/resume-matcher/internal/response"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type FieldExtractor interface {
	Extract(ctx context.Context, text string) (matcher.Fields, error)
}

type ResumeStore interface {
	Create(ctx context.Context, resume *model.Resume) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error)
	FindLatestByOwner(ctx context.Context, ownerEmail string) (*model.Resume, error)
	List(ctx context.Context, f repository.ResumeFilter) ([]model.Resume, int64, error)
}

type ResumeListParams struct {
	Skill    string
	Name     string
	Email    string
	Page     int
	PageSize int
}

type ResumeUsecase struct {
	resumes   ResumeStore
	text      TextExtractor
	extractor FieldExtractor
}

func NewResumeUsecase(resumes ResumeStore, text TextExtractor, extractor FieldExtractor) *ResumeUsecase {
	return &ResumeUsecase{resumes: resumes, text: text, extractor: extractor}
}

// Upload extracts text and fields from a PDF and stores the resume for actor.
func (uc *ResumeUsecase) Upload(ctx context.Context, actor Actor, filename string, data []byte) (*model.Resume, error) {
	rawText, err := uc.text.ExtractText(data)
	if err != nil {
		return nil, err
	}

	fields, err := uc.extractor.Extract(ctx, rawText)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	resume := &model.Resume{
		OwnerEmail:     actor.Email,
		Filename:       filename,
		RawText:        rawText,
		ExtractedName:  fields.Name,
		ExtractedEmail: fields.Email,
		ExtractedPhone: fields.Phone,
		Skills:         fields.Skills,
	}
	if err := uc.resumes.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	log.Printf("Resume %s stored for %s with %d skills", resume.ID, actor.Email, len(resume.Skills))
	return resume, nil
}

// List returns the actor's resumes, or every resume for admins.
func (uc *ResumeUsecase) List(ctx context.Context, actor Actor, p ResumeListParams) ([]model.Resume, *response.Pagination, error) {
	page, pageSize, err := normalizePage(p.Page, p.PageSize)
	if err != nil {
		return nil, nil, err
	}
	f := repository.ResumeFilter{
		Skill:  p.Skill,
		Name:   p.Name,
		Email:  p.Email,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if !actor.IsAdmin() {
		f.OwnerEmail = actor.Email
	}
	resumes, total, err := uc.resumes.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return resumes, response.NewPagination(page, pageSize, len(resumes), total), nil
}

func (uc *ResumeUsecase) Get(ctx context.Context, actor Actor, id uuid.UUID) (*model.Resume, error) {
	resume, err := uc.resumes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.canRead(resume.OwnerEmail) {
		// hide other users' resumes entirely
		return nil, ErrResumeNotFound
	}
	return resume, nil
}

// Latest returns the most recent resume uploaded by actor.
func (uc *ResumeUsecase) Latest(ctx context.Context, actor Actor) (*model.Resume, error) {
	resume, err := uc.resumes.FindLatestByOwner(ctx, actor.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResumeNotFound
	}
	return resume, err
}

func normalizePage(page, pageSize int) (int, int, error) {
	if page < 0 || pageSize < 0 {
		return 0, 0, fmt.Errorf("%w: page and page_size must not be negative", ErrInvalidInput)
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, nil
}
