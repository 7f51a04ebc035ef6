package finance

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddPaymentRequest represents a request to record a customer payment
type AddPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	SaleID     *uuid.UUID      `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=cash bank_transfer"`
	Notes      string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	SaleID     *uuid.UUID      `json:"sale_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes"`
	ReceivedBy uuid.UUID       `json:"received_by"`
	ReceivedAt time.Time       `json:"received_at"`
}

// PaymentListFilter represents filter options for payment list
type PaymentListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,oneof=electricity gas salary utilities raw_materials maintenance transport other"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,oneof=electricity gas salary utilities raw_materials maintenance transport other"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=500"`
	SpentAt     *time.Time       `json:"spent_at"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SpentAt     time.Time       `json:"spent_at"`
	RecordedBy  *uuid.UUID      `json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Version     int             `json:"version"`
}

// ExpenseListFilter represents filter options for expense list
type ExpenseListFilter struct {
	Category string     `form:"category" binding:"omitempty,oneof=electricity gas salary utilities raw_materials maintenance transport other"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		SaleID:     p.SaleID,
		Amount:     p.Amount,
		Method:     string(p.Method),
		Notes:      p.Notes,
		ReceivedBy: p.ReceivedBy,
		ReceivedAt: p.ReceivedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments
func ToPaymentResponses(payments []finance.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Description: e.Description,
		SpentAt:     e.SpentAt,
		RecordedBy:  e.GetCreatedBy(),
		CreatedAt:   e.CreatedAt,
		Version:     e.Version,
	}
}

// ToExpenseResponses converts a slice of domain expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
