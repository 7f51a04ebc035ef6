package inventory

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest represents a request to register a raw material
type CreateMaterialRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Type          string           `json:"type" binding:"required,oneof=flour yeast salt water filter bottle other"`
	Unit          string           `json:"unit" binding:"required,oneof=kg l piece"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// UpdateMaterialRequest represents a request to update a raw material
type UpdateMaterialRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type          *string          `json:"type" binding:"omitempty,oneof=flour yeast salt water filter bottle other"`
	Unit          *string          `json:"unit" binding:"omitempty,oneof=kg l piece"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// MaterialResponse represents a raw material in API responses
type MaterialResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	StockValue    decimal.Decimal `json:"stock_value"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// MaterialListFilter represents filter options for material list
type MaterialListFilter struct {
	Type     string `form:"type" binding:"omitempty,oneof=flour yeast salt water filter bottle other"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AddMovementRequest represents a request to record a stock movement
type AddMovementRequest struct {
	MaterialID  uuid.UUID        `json:"material_id" binding:"required"`
	Type        string           `json:"type" binding:"required,oneof=in out"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	Notes       string           `json:"notes"`
}

// MovementResponse represents a warehouse movement in API responses
type MovementResponse struct {
	ID          uuid.UUID        `json:"id"`
	MaterialID  uuid.UUID        `json:"material_id"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Notes       string           `json:"notes"`
	PerformedBy uuid.UUID        `json:"performed_by"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// MovementListFilter represents filter options for movement list
type MovementListFilter struct {
	MaterialID *uuid.UUID `form:"material_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToMaterialResponse converts a domain raw material to a response DTO
func ToMaterialResponse(m *inventory.RawMaterial) MaterialResponse {
	return MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Type:          string(m.Type),
		Unit:          string(m.Unit),
		Quantity:      m.Quantity,
		MinStockLevel: m.MinStockLevel,
		CostPerUnit:   m.CostPerUnit,
		StockValue:    m.StockValue(),
		LowStock:      m.IsLowStock(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Version:       m.Version,
	}
}

// ToMaterialResponses converts a slice of domain raw materials
func ToMaterialResponses(materials []inventory.RawMaterial) []MaterialResponse {
	responses := make([]MaterialResponse, len(materials))
	for i := range materials {
		responses[i] = ToMaterialResponse(&materials[i])
	}
	return responses
}

// ToMovementResponse converts a domain movement to a response DTO
func ToMovementResponse(m *inventory.WarehouseMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		MaterialID:  m.MaterialID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		CostPerUnit: m.CostPerUnit,
		Notes:       m.Notes,
		PerformedBy: m.PerformedBy,
		OccurredAt:  m.OccurredAt,
	}
}

// ToMovementResponses converts a slice of domain movements
func ToMovementResponses(movements []inventory.WarehouseMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
