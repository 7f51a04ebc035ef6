package finance

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// payment touches. Settling debt updates the payment ledger, the sales
// involved and the customer's balance in one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the finance-side
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() finance.PaymentRepository
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() trade.SaleRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	paymentRepo  finance.PaymentRepository
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	paymentRepo finance.PaymentRepository,
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository {
	return s.paymentRepo
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository {
	return s.saleRepo
}

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
