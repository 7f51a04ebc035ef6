package persistence

import (
	"context"
	"errors"

	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(customerModels), nil
}

// FindWithDebt finds customers with current debt > 0, ordered by debt descending
func (r *GormCustomerRepository) FindWithDebt(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("current_debt > 0")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("current_debt DESC")

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(customerModels), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a customer with optimistic locking (version check).
// Columns are listed explicitly so zero values like a paid-off debt are
// still written.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ? AND version = ?", customer.ID, customer.Version-1).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"company_name": model.CompanyName,
			"phone":        model.Phone,
			"address":      model.Address,
			"notes":        model.Notes,
			"current_debt": model.CurrentDebt,
			"is_active":    model.IsActive,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountWithDebt counts customers with current debt > 0
func (r *GormCustomerRepository) CountWithDebt(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("current_debt > 0").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumDebt returns the total outstanding debt across all customers
func (r *GormCustomerRepository) SumDebt(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Select("SUM(current_debt)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormCustomerRepository) toDomainSlice(customerModels []models.CustomerModel) []partner.Customer {
	customers := make([]partner.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers
}

// applyFilter applies filter options to the query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerSortFields, "name")
	if filter.OrderBy == "" {
		query = query.Order("name ASC")
	} else {
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR company_name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "has_debt":
			if value == true {
				query = query.Where("current_debt > 0")
			} else {
				query = query.Where("current_debt = 0")
			}
		}
	}

	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
