package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID, items included
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales matching the filter, items included
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}).Preload("Items").Preload("Customer"), filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(saleModels), nil
}

// FindByCustomer finds sales for a customer, newest first
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Preload("Items").Preload("Customer").
		Where("customer_id = ?", customerID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("sold_at DESC")

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(saleModels), nil
}

// FindByPeriod finds sales made within [from, to)
func (r *GormSaleRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(saleModels), nil
}

// FindUnpaidByCustomer finds the customer's sales with a positive remainder, oldest first
func (r *GormSaleRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		Where("customer_id = ? AND paid_amount < total_amount", customerID).
		Order("sold_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(saleModels), nil
}

// Save creates or updates a sale and its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Customer").Save(model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, model)
	})
}

// SaveWithLock saves a sale with optimistic locking (version check).
// Columns are listed explicitly so a paid amount zeroed by a full return
// is still written.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", sale.ID, sale.Version-1).
			Updates(map[string]interface{}{
				"total_amount": model.TotalAmount,
				"paid_amount":  model.PaidAmount,
				"payment_type": model.PaymentType,
				"notes":        model.Notes,
				"version":      model.Version,
				"updated_at":   model.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.saveItems(tx, model)
	})
}

// saveItems upserts the sale's items and removes lines no longer present
func (r *GormSaleRepository) saveItems(tx *gorm.DB, model *models.SaleModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.SaleItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", model.ID).
			Delete(&models.SaleItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		if err := tx.Omit("Product").Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SummaryByPeriod aggregates count, total and paid amounts for sales made within [from, to)
func (r *GormSaleRepository) SummaryByPeriod(ctx context.Context, from, to time.Time) (*trade.DailySummary, error) {
	type row struct {
		SalesCount  int64
		TotalAmount decimal.NullDecimal
		PaidAmount  decimal.NullDecimal
	}

	var result row
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("COUNT(*) AS sales_count, SUM(total_amount) AS total_amount, SUM(paid_amount) AS paid_amount").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Scan(&result).Error; err != nil {
		return nil, err
	}

	summary := &trade.DailySummary{
		Date:        from,
		SalesCount:  result.SalesCount,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
	}
	if result.TotalAmount.Valid {
		summary.TotalAmount = result.TotalAmount.Decimal
	}
	if result.PaidAmount.Valid {
		summary.PaidAmount = result.PaidAmount.Decimal
	}
	return summary, nil
}

func (r *GormSaleRepository) toDomainSlice(saleModels []models.SaleModel) []trade.Sale {
	sales := make([]trade.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("sold_at DESC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "sold_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "payment_type":
			query = query.Where("payment_type = ?", value)
		case "unpaid":
			if value == true {
				query = query.Where("paid_amount < total_amount")
			}
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
