package catalog

import (
	"strings"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType represents the kind of finished good
type ProductType string

const (
	ProductTypeBread ProductType = "non" // flatbread
	ProductTypeWater ProductType = "suv" // bottled water
)

// Product represents a finished good in the catalog context.
// It is the aggregate root for product-related operations and tracks
// the sellable stock quantity.
// DefaultProductUnit is used when no sale unit is given.
const DefaultProductUnit = "dona"

type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Type          ProductType
	Price         decimal.Decimal
	Unit          string
	StockQuantity int
	Description   string
	IsActive      bool
}

// NewProduct creates a new product with required fields.
// unit is the sale unit ("dona", "blok", ...); empty means DefaultProductUnit.
func NewProduct(name string, productType ProductType, price decimal.Decimal, unit string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateProductType(productType); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	unit, err := normalizeUnit(unit)
	if err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Type:              productType,
		Price:             price,
		Unit:              unit,
		StockQuantity:     0,
		IsActive:          true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name string, productType ProductType, price decimal.Decimal, unit, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateProductType(productType); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	unit, err := normalizeUnit(unit)
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Type = productType
	p.Price = price
	p.Unit = unit
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice changes the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddStock increases the sellable stock quantity
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveStock decreases the sellable stock quantity.
// Fails when less stock is available than requested.
func (p *Product) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if p.StockQuantity < quantity {
		return shared.ErrInsufficientStock
	}

	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStock returns true if at least the requested quantity is available
func (p *Product) HasStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Validation functions

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func normalizeUnit(unit string) (string, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return DefaultProductUnit, nil
	}
	if len(unit) > 20 {
		return "", shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return unit, nil
}

func validateProductType(t ProductType) error {
	switch t {
	case ProductTypeBread, ProductTypeWater:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Product type must be 'non' or 'suv'")
	}
}
