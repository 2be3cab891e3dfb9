package contract

import (
	"context"

	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/specification"
)

// UserRepository is read-only: the profile service owns writes.
type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
