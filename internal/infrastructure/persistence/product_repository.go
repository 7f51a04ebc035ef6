package persistence

import (
	"context"
	"errors"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(productModels), nil
}

// FindByType finds products of the given type
func (r *GormProductRepository) FindByType(ctx context.Context, productType catalog.ProductType, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("type = ?", productType),
		filter,
	)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(productModels), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(productModels), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a product with optimistic locking (version check).
// Columns are listed explicitly so a stock that dropped to zero is still
// written.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"type":           model.Type,
			"price":          model.Price,
			"unit":           model.Unit,
			"stock_quantity": model.StockQuantity,
			"description":    model.Description,
			"is_active":      model.IsActive,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumStockByType returns the total stock quantity per product type
func (r *GormProductRepository) SumStockByType(ctx context.Context) (map[catalog.ProductType]int, error) {
	type typeSum struct {
		Type  catalog.ProductType
		Total int
	}

	var sums []typeSum
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("type, COALESCE(SUM(stock_quantity), 0) AS total").
		Group("type").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	result := make(map[catalog.ProductType]int, len(sums))
	for _, s := range sums {
		result[s.Type] = s.Total
	}
	return result, nil
}

func (r *GormProductRepository) toDomainSlice(productModels []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("name ASC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
