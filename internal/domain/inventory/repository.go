package inventory

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RawMaterialRepository defines the interface for raw material persistence
type RawMaterialRepository interface {
	// FindByID finds a raw material by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error)

	// FindAll finds all raw materials matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]RawMaterial, error)

	// FindByType finds raw materials of the given type
	FindByType(ctx context.Context, materialType MaterialType, filter shared.Filter) ([]RawMaterial, error)

	// FindLowStock finds materials whose quantity is at or below their minimum level
	FindLowStock(ctx context.Context) ([]RawMaterial, error)

	// Save creates or updates a raw material
	Save(ctx context.Context, material *RawMaterial) error

	// SaveWithLock saves a raw material with optimistic locking (version check)
	SaveWithLock(ctx context.Context, material *RawMaterial) error

	// Delete deletes a raw material
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts raw materials matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// MovementRepository defines the interface for warehouse movement persistence.
// Movements are append-only; there is no update or delete.
type MovementRepository interface {
	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*WarehouseMovement, error)

	// FindAll finds all movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]WarehouseMovement, error)

	// FindByMaterial finds movements for a material, newest first
	FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]WarehouseMovement, error)

	// FindByPeriod finds movements that occurred within [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]WarehouseMovement, error)

	// Save persists a new movement record
	Save(ctx context.Context, movement *WarehouseMovement) error

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
