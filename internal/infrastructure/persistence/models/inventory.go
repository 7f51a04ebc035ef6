package models

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawMaterialModel is the persistence model for the RawMaterial aggregate root.
type RawMaterialModel struct {
	AggregateModel
	Name          string                 `gorm:"type:varchar(200);not null"`
	Type          inventory.MaterialType `gorm:"type:varchar(20);not null;index"`
	Unit          inventory.MaterialUnit `gorm:"type:varchar(10);not null"`
	Quantity      decimal.Decimal        `gorm:"type:decimal(18,3);not null;default:0"`
	MinStockLevel decimal.Decimal        `gorm:"type:decimal(18,3);not null;default:0"`
	CostPerUnit   decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (RawMaterialModel) TableName() string {
	return "raw_materials"
}

// ToDomain converts the persistence model to a domain RawMaterial entity.
func (m *RawMaterialModel) ToDomain() *inventory.RawMaterial {
	return &inventory.RawMaterial{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		Unit:              m.Unit,
		Quantity:          m.Quantity,
		MinStockLevel:     m.MinStockLevel,
		CostPerUnit:       m.CostPerUnit,
	}
}

// FromDomain populates the persistence model from a domain RawMaterial entity.
func (m *RawMaterialModel) FromDomain(r *inventory.RawMaterial) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.Type = r.Type
	m.Unit = r.Unit
	m.Quantity = r.Quantity
	m.MinStockLevel = r.MinStockLevel
	m.CostPerUnit = r.CostPerUnit
}

// RawMaterialModelFromDomain creates a new persistence model from a domain RawMaterial entity.
func RawMaterialModelFromDomain(r *inventory.RawMaterial) *RawMaterialModel {
	m := &RawMaterialModel{}
	m.FromDomain(r)
	return m
}

// WarehouseMovementModel is the persistence model for a warehouse movement record.
type WarehouseMovementModel struct {
	BaseModel
	MaterialID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	Material    *RawMaterialModel      `gorm:"foreignKey:MaterialID"`
	Type        inventory.MovementType `gorm:"type:varchar(10);not null"`
	Quantity    decimal.Decimal        `gorm:"type:decimal(18,3);not null"`
	CostPerUnit *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	Notes       string                 `gorm:"type:text"`
	PerformedBy uuid.UUID              `gorm:"type:uuid;not null;index"`
	OccurredAt  time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (WarehouseMovementModel) TableName() string {
	return "warehouse_movements"
}

// ToDomain converts the persistence model to a domain WarehouseMovement entity.
func (m *WarehouseMovementModel) ToDomain() *inventory.WarehouseMovement {
	return &inventory.WarehouseMovement{
		BaseEntity:  m.BaseModel.ToDomain(),
		MaterialID:  m.MaterialID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		CostPerUnit: m.CostPerUnit,
		Notes:       m.Notes,
		PerformedBy: m.PerformedBy,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain WarehouseMovement entity.
func (m *WarehouseMovementModel) FromDomain(w *inventory.WarehouseMovement) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.MaterialID = w.MaterialID
	m.Type = w.Type
	m.Quantity = w.Quantity
	m.CostPerUnit = w.CostPerUnit
	m.Notes = w.Notes
	m.PerformedBy = w.PerformedBy
	m.OccurredAt = w.OccurredAt
}

// WarehouseMovementModelFromDomain creates a new persistence model from a domain WarehouseMovement entity.
func WarehouseMovementModelFromDomain(w *inventory.WarehouseMovement) *WarehouseMovementModel {
	m := &WarehouseMovementModel{}
	m.FromDomain(w)
	return m
}
