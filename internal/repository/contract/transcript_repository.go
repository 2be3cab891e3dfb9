package contract

import (
	"context"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TranscriptRepository interface {
	CreateBatch(ctx context.Context, msgs []*entity.TranscriptMessage) error
	DeleteByCaseId(ctx context.Context, caseId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
