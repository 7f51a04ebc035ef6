package inventory

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a warehouse movement
type MovementType string

const (
	MovementTypeIn  MovementType = "in"
	MovementTypeOut MovementType = "out"
)

// WarehouseMovement is the immutable record of a single stock change
// on a raw material. Movements are never edited after creation.
type WarehouseMovement struct {
	shared.BaseEntity
	MaterialID  uuid.UUID
	Type        MovementType
	Quantity    decimal.Decimal
	CostPerUnit *decimal.Decimal
	Notes       string
	PerformedBy uuid.UUID
	OccurredAt  time.Time
}

// NewInboundMovement records a receipt of material into the warehouse.
// costPerUnit is optional; when given it becomes the material's new unit cost.
func NewInboundMovement(materialID uuid.UUID, quantity decimal.Decimal, costPerUnit *decimal.Decimal, notes string, performedBy uuid.UUID) (*WarehouseMovement, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}
	if costPerUnit != nil && costPerUnit.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	return &WarehouseMovement{
		BaseEntity:  shared.NewBaseEntity(),
		MaterialID:  materialID,
		Type:        MovementTypeIn,
		Quantity:    quantity,
		CostPerUnit: costPerUnit,
		Notes:       notes,
		PerformedBy: performedBy,
		OccurredAt:  time.Now(),
	}, nil
}

// NewOutboundMovement records a consumption of material from the warehouse
func NewOutboundMovement(materialID uuid.UUID, quantity decimal.Decimal, notes string, performedBy uuid.UUID) (*WarehouseMovement, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}

	return &WarehouseMovement{
		BaseEntity:  shared.NewBaseEntity(),
		MaterialID:  materialID,
		Type:        MovementTypeOut,
		Quantity:    quantity,
		Notes:       notes,
		PerformedBy: performedBy,
		OccurredAt:  time.Now(),
	}, nil
}

// IsInbound returns true for receipts
func (m *WarehouseMovement) IsInbound() bool {
	return m.Type == MovementTypeIn
}

// IsOutbound returns true for consumptions
func (m *WarehouseMovement) IsOutbound() bool {
	return m.Type == MovementTypeOut
}
