package finance

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment persistence.
// Payments are append-only; corrections are made with new records.
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll finds all payments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// FindByCustomer finds payments for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// FindByPeriod finds payments received within [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Payment, error)

	// Save persists a new payment record
	Save(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumByPeriod totals payments received within [from, to)
	SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// CategoryTotal aggregates expense amounts for one category
type CategoryTotal struct {
	Category ExpenseCategory
	Total    decimal.Decimal
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindAll finds all expenses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)

	// FindByPeriod finds expenses spent within [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Expense, error)

	// FindByCategory finds expenses of the given category
	FindByCategory(ctx context.Context, category ExpenseCategory, filter shared.Filter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts expenses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumByPeriod totals expenses spent within [from, to)
	SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// TotalsByCategory aggregates expenses per category within [from, to)
	TotalsByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
