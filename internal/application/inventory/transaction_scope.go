package inventory

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the warehouse
// repositories. A movement and the material stock it changes are always
// written in one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the warehouse
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// MaterialRepo returns the raw material repository scoped to the current transaction
	MaterialRepo() inventory.RawMaterialRepository
	// MovementRepo returns the movement repository scoped to the current transaction
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	materialRepo inventory.RawMaterialRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	materialRepo inventory.RawMaterialRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MaterialRepo returns the raw material repository.
func (s *NoOpTransactionScope) MaterialRepo() inventory.RawMaterialRepository {
	return s.materialRepo
}

// MovementRepo returns the movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
