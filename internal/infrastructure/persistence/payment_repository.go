package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// Payments are append-only; corrections are made with new records.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(paymentModels), nil
}

// FindByCustomer finds payments for a customer, newest first
func (r *GormPaymentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("customer_id = ?", customerID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("received_at DESC")

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(paymentModels), nil
}

// FindByPeriod finds payments received within [from, to)
func (r *GormPaymentRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("received_at >= ? AND received_at < ?", from, to).
		Order("received_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(paymentModels), nil
}

// Save persists a new payment record
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Omit("Customer", "Sale").Create(model).Error
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByPeriod totals payments received within [from, to)
func (r *GormPaymentRepository) SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("SUM(amount)").
		Where("received_at >= ? AND received_at < ?", from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormPaymentRepository) toDomainSlice(paymentModels []models.PaymentModel) []finance.Payment {
	payments := make([]finance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

// applyFilter applies filter options to the query
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("received_at DESC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "received_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		}
	}

	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
