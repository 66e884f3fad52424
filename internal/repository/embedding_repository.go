package repository

import (
	"context"

	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db}
}

// FindByHashes returns the cached vectors keyed by hash. Missing hashes are
// simply absent from the map.
func (r *EmbeddingRepository) FindByHashes(ctx context.Context, hashes []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(hashes))
	if len(hashes) == 0 {
		return out, nil
	}
	var rows []model.Embedding
	if err := r.db.WithContext(ctx).Where("hash IN ?", hashes).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Hash] = row.Vector.Slice()
	}
	return out, nil
}

func (r *EmbeddingRepository) Save(ctx context.Context, embeddingModel string, vectors map[string][]float32) error {
	if len(vectors) == 0 {
		return nil
	}
	rows := make([]model.Embedding, 0, len(vectors))
	for hash, v := range vectors {
		rows = append(rows, model.Embedding{Hash: hash, Model: embeddingModel, Vector: pgvector.NewVector(v)})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
