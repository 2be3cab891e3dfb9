package unitofwork

import (
	"context"

	"legal-intake-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CaseRepository() contract.CaseRepository
	TranscriptRepository() contract.TranscriptRepository
	StrengthRepository() contract.StrengthRepository
	JurisprudenceRepository() contract.JurisprudenceRepository
}
