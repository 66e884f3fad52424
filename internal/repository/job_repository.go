package repository

import (
	"context"
	"fmt"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// ReplaceAll swaps the whole corpus inside one transaction, so concurrent
// readers observe either the previous corpus or the new one.
func (r *JobRepository) ReplaceAll(ctx context.Context, jobs []model.Job) (uuid.UUID, error) {
	batchID := uuid.New()
	for i := range jobs {
		jobs[i].ID = uuid.Nil
		jobs[i].BatchID = batchID
		jobs[i].Position = i
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Job{}).Error; err != nil {
			return fmt.Errorf("delete jobs: %w", err)
		}
		if len(jobs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(jobs, 200).Error; err != nil {
			return fmt.Errorf("insert jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return batchID, nil
}

// FindAll returns the current corpus in insertion order.
func (r *JobRepository) FindAll(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Order("position ASC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]model.Job, int64, error) {
	var (
		jobs  []model.Job
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("position ASC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}
