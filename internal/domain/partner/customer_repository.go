package partner

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// FindWithDebt finds customers with current debt > 0, ordered by debt descending
	FindWithDebt(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock saves a customer with optimistic locking (version check)
	// Returns error if the version has changed (concurrent modification)
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountWithDebt counts customers with current debt > 0
	CountWithDebt(ctx context.Context) (int64, error)

	// SumDebt returns the total outstanding debt across all customers
	SumDebt(ctx context.Context) (decimal.Decimal, error)
}
