package implementation

import (
	"context"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/model"
	"legal-intake-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JurisprudenceRepositoryImpl struct {
	db *gorm.DB
}

func NewJurisprudenceRepository(db *gorm.DB) contract.JurisprudenceRepository {
	return &JurisprudenceRepositoryImpl{db: db}
}

func (r *JurisprudenceRepositoryImpl) Create(ctx context.Context, doc *entity.JurisprudenceDocument, embedding []float32) error {
	m := &model.JurisprudenceDocument{
		Id:             doc.Id,
		Reference:      doc.Reference,
		Court:          doc.Court,
		Summary:        doc.Summary,
		EmbeddingValue: pgvector.NewVector(embedding),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.CreatedAt = m.CreatedAt
	return nil
}

// SearchSimilarWithScore returns corpus documents with cosine similarity
// above threshold. Cosine distance in pgvector is 1 - cosine_similarity.
func (r *JurisprudenceRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredJurisprudence, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.JurisprudenceDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("jurisprudence_documents").
		Select("jurisprudence_documents.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredJurisprudence, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredJurisprudence{
			Document: &entity.JurisprudenceDocument{
				Id:        res.Id,
				Reference: res.Reference,
				Court:     res.Court,
				Summary:   res.Summary,
				CreatedAt: res.CreatedAt,
			},
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *JurisprudenceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.JurisprudenceDocument{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
