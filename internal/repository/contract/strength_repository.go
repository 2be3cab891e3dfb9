package contract

import (
	"context"

	"legal-intake-be/internal/entity"

	"github.com/google/uuid"
)

type StrengthRepository interface {
	Create(ctx context.Context, report *entity.StrengthReport) error
	FindLatestByCaseId(ctx context.Context, caseId uuid.UUID) (*entity.StrengthReport, error)
	DeleteByCaseId(ctx context.Context, caseId uuid.UUID) error
}
