package finance

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how money was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is the immutable record of money received from a customer.
// A payment either settles a specific sale or pays down the customer's
// general debt, oldest sales first.
type Payment struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	SaleID     *uuid.UUID
	Amount     decimal.Decimal
	Method     PaymentMethod
	Notes      string
	ReceivedBy uuid.UUID
	ReceivedAt time.Time
}

// NewPayment records money received from a customer.
// saleID is optional; when nil the payment is applied to general debt.
func NewPayment(customerID uuid.UUID, saleID *uuid.UUID, amount decimal.Decimal, method PaymentMethod, notes string, receivedBy uuid.UUID) (*Payment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if err := validatePaymentMethod(method); err != nil {
		return nil, err
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		SaleID:     saleID,
		Amount:     amount,
		Method:     method,
		Notes:      notes,
		ReceivedBy: receivedBy,
		ReceivedAt: time.Now(),
	}, nil
}

// IsSaleTied returns true when the payment targets a specific sale
func (p *Payment) IsSaleTied() bool {
	return p.SaleID != nil
}

func validatePaymentMethod(m PaymentMethod) error {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be 'cash' or 'bank_transfer'")
	}
}
