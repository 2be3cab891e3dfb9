package contract

import (
	"context"

	"legal-intake-be/internal/entity"
)

// ScoredJurisprudence couples a corpus document with its cosine similarity
// against the query embedding.
type ScoredJurisprudence struct {
	Document   *entity.JurisprudenceDocument
	Similarity float64
}

type JurisprudenceRepository interface {
	Create(ctx context.Context, doc *entity.JurisprudenceDocument, embedding []float32) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredJurisprudence, error)
	Count(ctx context.Context) (int64, error)
}
