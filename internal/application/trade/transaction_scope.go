package trade

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// sale touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade-side repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() trade.SaleRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository {
	return s.saleRepo
}

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
