package persistence

import (
	"context"
	"errors"

	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRawMaterialRepository implements RawMaterialRepository using GORM
type GormRawMaterialRepository struct {
	db *gorm.DB
}

// NewGormRawMaterialRepository creates a new GormRawMaterialRepository
func NewGormRawMaterialRepository(db *gorm.DB) *GormRawMaterialRepository {
	return &GormRawMaterialRepository{db: db}
}

// FindByID finds a raw material by its ID
func (r *GormRawMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.RawMaterial, error) {
	var model models.RawMaterialModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all raw materials matching the filter
func (r *GormRawMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.RawMaterial, error) {
	var materialModels []models.RawMaterialModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RawMaterialModel{}), filter)

	if err := query.Find(&materialModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(materialModels), nil
}

// FindByType finds raw materials of the given type
func (r *GormRawMaterialRepository) FindByType(ctx context.Context, materialType inventory.MaterialType, filter shared.Filter) ([]inventory.RawMaterial, error) {
	var materialModels []models.RawMaterialModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.RawMaterialModel{}).Where("type = ?", materialType),
		filter,
	)

	if err := query.Find(&materialModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(materialModels), nil
}

// FindLowStock finds materials whose quantity is at or below their minimum level
func (r *GormRawMaterialRepository) FindLowStock(ctx context.Context) ([]inventory.RawMaterial, error) {
	var materialModels []models.RawMaterialModel
	if err := r.db.WithContext(ctx).
		Where("quantity <= min_stock_level").
		Order("name ASC").
		Find(&materialModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(materialModels), nil
}

// Save creates or updates a raw material
func (r *GormRawMaterialRepository) Save(ctx context.Context, material *inventory.RawMaterial) error {
	model := models.RawMaterialModelFromDomain(material)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a raw material with optimistic locking (version check).
// Columns are listed explicitly so a quantity drained to zero is still
// written.
func (r *GormRawMaterialRepository) SaveWithLock(ctx context.Context, material *inventory.RawMaterial) error {
	model := models.RawMaterialModelFromDomain(material)
	result := r.db.WithContext(ctx).
		Model(&models.RawMaterialModel{}).
		Where("id = ? AND version = ?", material.ID, material.Version-1).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"type":            model.Type,
			"unit":            model.Unit,
			"quantity":        model.Quantity,
			"min_stock_level": model.MinStockLevel,
			"cost_per_unit":   model.CostPerUnit,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a raw material
func (r *GormRawMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RawMaterialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts raw materials matching the filter
func (r *GormRawMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.RawMaterialModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRawMaterialRepository) toDomainSlice(materialModels []models.RawMaterialModel) []inventory.RawMaterial {
	materials := make([]inventory.RawMaterial, len(materialModels))
	for i, model := range materialModels {
		materials[i] = *model.ToDomain()
	}
	return materials
}

// applyFilter applies filter options to the query
func (r *GormRawMaterialRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("name ASC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, MaterialSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRawMaterialRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("quantity <= min_stock_level")
			}
		}
	}

	return query
}

// Ensure GormRawMaterialRepository implements RawMaterialRepository
var _ inventory.RawMaterialRepository = (*GormRawMaterialRepository)(nil)
