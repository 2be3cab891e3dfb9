package unitofwork

import "context"

// RepositoryFactory creates UnitOfWork instances scoped to a request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
