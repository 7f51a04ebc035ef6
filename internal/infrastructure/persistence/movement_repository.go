package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
// Movements are append-only; the repository exposes no update or delete.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.WarehouseMovement, error) {
	var model models.WarehouseMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all movements matching the filter
func (r *GormMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.WarehouseMovement, error) {
	var movementModels []models.WarehouseMovementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{}), filter)

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(movementModels), nil
}

// FindByMaterial finds movements for a material, newest first
func (r *GormMovementRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]inventory.WarehouseMovement, error) {
	var movementModels []models.WarehouseMovementModel
	query := r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{}).
		Where("material_id = ?", materialID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("occurred_at DESC")

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(movementModels), nil
}

// FindByPeriod finds movements that occurred within [from, to)
func (r *GormMovementRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]inventory.WarehouseMovement, error) {
	var movementModels []models.WarehouseMovementModel
	if err := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order("occurred_at ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(movementModels), nil
}

// Save persists a new movement record
func (r *GormMovementRepository) Save(ctx context.Context, movement *inventory.WarehouseMovement) error {
	model := models.WarehouseMovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Omit("Material").Create(model).Error
}

// Count counts movements matching the filter
func (r *GormMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMovementRepository) toDomainSlice(movementModels []models.WarehouseMovementModel) []inventory.WarehouseMovement {
	movements := make([]inventory.WarehouseMovement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements
}

// applyFilter applies filter options to the query
func (r *GormMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("occurred_at DESC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, MovementSortFields, "occurred_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMovementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "material_id":
			query = query.Where("material_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	return query
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
