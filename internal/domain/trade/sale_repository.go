package trade

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySummary aggregates one day's sales figures
type DailySummary struct {
	Date        time.Time
	SalesCount  int64
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
}

// SaleRepository defines the interface for sale persistence.
// Finders load the sale together with its items.
type SaleRepository interface {
	// FindByID finds a sale by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll finds all sales matching the filter, items included
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// FindByCustomer finds sales for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByPeriod finds sales made within [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Sale, error)

	// FindUnpaidByCustomer finds the customer's sales with a positive
	// remainder, oldest first
	FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]Sale, error)

	// Save creates or updates a sale and its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves a sale with optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SummaryByPeriod aggregates count, total and paid amounts for sales
	// made within [from, to)
	SummaryByPeriod(ctx context.Context, from, to time.Time) (*DailySummary, error)
}
