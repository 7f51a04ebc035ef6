package partner

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Notes       *string `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CompanyName string          `json:"company_name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	WithDebt bool   `form:"with_debt"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Phone:       c.Phone,
		Address:     c.Address,
		Notes:       c.Notes,
		CurrentDebt: c.CurrentDebt,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
