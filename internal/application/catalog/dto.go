package catalog

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Type        string          `json:"type" binding:"required,oneof=non suv"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Unit        string          `json:"unit" binding:"max=20"`
	Description string          `json:"description"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type        *string          `json:"type" binding:"omitempty,oneof=non suv"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	Description *string          `json:"description"`
}

// UpdateStockRequest adjusts a product's stock by hand
type UpdateStockRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Operation string `json:"operation" binding:"required,oneof=add subtract"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	Description   string          `json:"description"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=non suv"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          string(p.Type),
		Price:         p.Price,
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		Description:   p.Description,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
