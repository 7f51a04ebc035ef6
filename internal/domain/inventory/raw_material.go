package inventory

import (
	"strings"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaterialType represents the kind of raw material
type MaterialType string

const (
	MaterialTypeFlour  MaterialType = "flour"
	MaterialTypeYeast  MaterialType = "yeast"
	MaterialTypeSalt   MaterialType = "salt"
	MaterialTypeWater  MaterialType = "water"
	MaterialTypeFilter MaterialType = "filter"
	MaterialTypeBottle MaterialType = "bottle"
	MaterialTypeOther  MaterialType = "other"
)

// MaterialUnit represents the unit of measure for a raw material
type MaterialUnit string

const (
	UnitKilogram MaterialUnit = "kg"
	UnitLiter    MaterialUnit = "l"
	UnitPiece    MaterialUnit = "piece"
)

// RawMaterial represents a warehouse-held input to production.
// It is the aggregate root for material stock; all quantity changes go
// through warehouse movements.
type RawMaterial struct {
	shared.BaseAggregateRoot
	Name          string
	Type          MaterialType
	Unit          MaterialUnit
	Quantity      decimal.Decimal
	MinStockLevel decimal.Decimal
	CostPerUnit   decimal.Decimal
}

// NewRawMaterial creates a new raw material with required fields
func NewRawMaterial(name string, materialType MaterialType, unit MaterialUnit) (*RawMaterial, error) {
	if err := validateMaterialName(name); err != nil {
		return nil, err
	}
	if err := validateMaterialType(materialType); err != nil {
		return nil, err
	}
	if err := validateMaterialUnit(unit); err != nil {
		return nil, err
	}

	return &RawMaterial{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Type:              materialType,
		Unit:              unit,
		Quantity:          decimal.Zero,
		MinStockLevel:     decimal.Zero,
		CostPerUnit:       decimal.Zero,
	}, nil
}

// Update updates the material's descriptive fields
func (m *RawMaterial) Update(name string, materialType MaterialType, unit MaterialUnit, minStockLevel decimal.Decimal) error {
	if err := validateMaterialName(name); err != nil {
		return err
	}
	if err := validateMaterialType(materialType); err != nil {
		return err
	}
	if err := validateMaterialUnit(unit); err != nil {
		return err
	}
	if minStockLevel.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}

	m.Name = strings.TrimSpace(name)
	m.Type = materialType
	m.Unit = unit
	m.MinStockLevel = minStockLevel
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Receive increases the stock quantity for an inbound movement.
// A positive costPerUnit replaces the stored unit cost.
func (m *RawMaterial) Receive(quantity, costPerUnit decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.ErrInvalidQuantity
	}
	if costPerUnit.IsNegative() {
		return shared.ErrInvalidAmount
	}

	m.Quantity = m.Quantity.Add(quantity)
	if costPerUnit.IsPositive() {
		m.CostPerUnit = costPerUnit
	}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Consume decreases the stock quantity for an outbound movement.
// Fails when less stock is held than requested.
func (m *RawMaterial) Consume(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.ErrInvalidQuantity
	}
	if m.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	m.Quantity = m.Quantity.Sub(quantity)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// IsLowStock returns true if the held quantity is at or below the minimum level
func (m *RawMaterial) IsLowStock() bool {
	return m.Quantity.LessThanOrEqual(m.MinStockLevel)
}

// StockValue returns quantity multiplied by the stored unit cost
func (m *RawMaterial) StockValue() decimal.Decimal {
	return m.Quantity.Mul(m.CostPerUnit)
}

// Validation functions

func validateMaterialName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot exceed 200 characters")
	}
	return nil
}

func validateMaterialType(t MaterialType) error {
	switch t {
	case MaterialTypeFlour, MaterialTypeYeast, MaterialTypeSalt, MaterialTypeWater,
		MaterialTypeFilter, MaterialTypeBottle, MaterialTypeOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid material type")
	}
}

func validateMaterialUnit(u MaterialUnit) error {
	switch u {
	case UnitKilogram, UnitLiter, UnitPiece:
		return nil
	default:
		return shared.NewDomainError("INVALID_UNIT", "Unit must be 'kg', 'l' or 'piece'")
	}
}
