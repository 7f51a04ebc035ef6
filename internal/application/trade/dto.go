package trade

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a new sale. The unit price is the
// price agreed at the counter, which may differ from the catalog price.
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	CustomerID  uuid.UUID         `json:"customer_id" binding:"required"`
	Items       []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentType string            `json:"payment_type" binding:"required,oneof=cash bank_transfer credit"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	Notes       string            `json:"notes"`
}

// ReturnLineRequest is one line of a return
type ReturnLineRequest struct {
	SaleItemID uuid.UUID `json:"sale_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// ReturnItemsRequest represents a request to return items from a sale
type ReturnItemsRequest struct {
	Items []ReturnLineRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Quantity         int             `json:"quantity"`
	ReturnedQuantity int             `json:"returned_quantity"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID              uuid.UUID          `json:"id"`
	CustomerID      uuid.UUID          `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	Items           []SaleItemResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	RemainingAmount decimal.Decimal    `json:"remaining_amount"`
	PaymentType     string             `json:"payment_type"`
	Notes           string             `json:"notes"`
	SoldBy          *uuid.UUID         `json:"sold_by,omitempty"`
	SoldAt          time.Time          `json:"sold_at"`
	CreatedAt       time.Time          `json:"created_at"`
	Version         int                `json:"version"`
}

// ReturnItemsResponse reports the outcome of a return
type ReturnItemsResponse struct {
	Sale         SaleResponse    `json:"sale"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	DebtReduced  decimal.Decimal `json:"debt_reduced"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DailySummaryResponse aggregates one day's sales
type DailySummaryResponse struct {
	Date        time.Time       `json:"date"`
	SalesCount  int64           `json:"sales_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		items[i] = SaleItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			UnitPrice:        item.UnitPrice,
			Quantity:         item.Quantity,
			ReturnedQuantity: item.ReturnedQuantity,
			Subtotal:         item.Subtotal,
		}
	}

	return SaleResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		Items:           items,
		TotalAmount:     s.TotalAmount,
		PaidAmount:      s.PaidAmount,
		RemainingAmount: s.RemainingAmount(),
		PaymentType:     string(s.PaymentType),
		Notes:           s.Notes,
		SoldBy:          s.GetCreatedBy(),
		SoldAt:          s.SoldAt,
		CreatedAt:       s.CreatedAt,
		Version:         s.Version,
	}
}

// ToSaleResponses converts a slice of domain sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
