package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeFilter struct {
	OwnerEmail string // empty lists every owner
	Skill      string
	Name       string
	Email      string
	Limit      int
	Offset     int
}

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *ResumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).First(&resume, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepository) FindLatestByOwner(ctx context.Context, ownerEmail string) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepository) List(ctx context.Context, f ResumeFilter) ([]model.Resume, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Resume{})
	if f.OwnerEmail != "" {
		q = q.Where("owner_email = ?", f.OwnerEmail)
	}
	if skill := strings.ToLower(strings.TrimSpace(f.Skill)); skill != "" {
		b, err := json.Marshal([]string{skill})
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("skills @> ?::jsonb", string(b))
	}
	if f.Name != "" {
		q = q.Where("extracted_name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.Email != "" {
		q = q.Where("extracted_email = ?", f.Email)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resumes []model.Resume
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&resumes).Error
	return resumes, total, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
