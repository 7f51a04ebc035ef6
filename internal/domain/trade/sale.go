package trade

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType represents how a sale is settled at the counter
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCredit       PaymentType = "credit"
)

// SaleItem is a line on a sale. Unit price and product name are
// snapshotted at sale time so later catalog edits do not rewrite history.
type SaleItem struct {
	shared.BaseEntity
	SaleID           uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	UnitPrice        decimal.Decimal
	Quantity         int
	ReturnedQuantity int
	Subtotal         decimal.Decimal
}

// NetQuantity returns the quantity kept by the customer
func (i *SaleItem) NetQuantity() int {
	return i.Quantity - i.ReturnedQuantity
}

// ReturnLine asks to return a quantity of one sale item
type ReturnLine struct {
	SaleItemID uuid.UUID
	Quantity   int
}

// Sale represents a completed counter sale. It is the aggregate root of
// the trade context; items, returns and payments against the sale all go
// through it so the totals stay consistent.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	// CustomerName is filled from the customer record when a sale is
	// loaded, for display only. It is never persisted on the sale.
	CustomerName string
	Items        []SaleItem
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	PaymentType  PaymentType
	Notes        string
	SoldAt       time.Time
}

// NewSale creates an empty sale for the given customer.
// Items are added with AddItem before the sale is persisted.
func NewSale(customerID uuid.UUID, paymentType PaymentType, notes string, soldBy uuid.UUID) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if err := validatePaymentType(paymentType); err != nil {
		return nil, err
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(soldBy),
		CustomerID:        customerID,
		Items:             make([]SaleItem, 0),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		PaymentType:       paymentType,
		Notes:             notes,
		SoldAt:            time.Now(),
	}, nil
}

// AddItem appends a line to the sale and recalculates the total
func (s *Sale) AddItem(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return shared.ErrInvalidAmount
	}

	item := SaleItem{
		BaseEntity:  shared.NewBaseEntity(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	s.Items = append(s.Items, item)
	s.recalculateTotals()

	return nil
}

// SetInitialPayment records the amount handed over when the sale was made.
// The unpaid remainder becomes customer debt. Paying more than the total
// is allowed at the counter; the excess is change, so the recorded paid
// amount is capped at the sale total.
func (s *Sale) SetInitialPayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if amount.GreaterThan(s.TotalAmount) {
		amount = s.TotalAmount
	}

	s.PaidAmount = amount
	return nil
}

// AddPayment applies a later payment against this sale's remainder
func (s *Sale) AddPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if amount.GreaterThan(s.RemainingAmount()) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds the remaining amount of the sale")
	}

	s.PaidAmount = s.PaidAmount.Add(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ReturnItems processes a return of one or more lines. Returned
// quantities accumulate on the items, the total shrinks accordingly and
// the paid amount is capped at the new total. The returned value is the
// cash refund owed to the customer for amounts already paid above the
// new total.
func (s *Sale) ReturnItems(lines []ReturnLine) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "At least one return line is required")
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return decimal.Zero, shared.ErrInvalidQuantity
		}
		item := s.findItem(line.SaleItemID)
		if item == nil {
			return decimal.Zero, shared.NewDomainError("NOT_FOUND", "Sale item not found on this sale")
		}
		if line.Quantity > item.NetQuantity() {
			return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Cannot return more than was sold")
		}
	}

	for _, line := range lines {
		item := s.findItem(line.SaleItemID)
		item.ReturnedQuantity += line.Quantity
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.NetQuantity())))
		item.UpdatedAt = time.Now()
	}
	s.recalculateTotals()

	refund := decimal.Zero
	if s.PaidAmount.GreaterThan(s.TotalAmount) {
		refund = s.PaidAmount.Sub(s.TotalAmount)
		s.PaidAmount = s.TotalAmount
	}

	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return refund, nil
}

// RemainingAmount returns the unpaid part of the sale, never negative
func (s *Sale) RemainingAmount() decimal.Decimal {
	remaining := s.TotalAmount.Sub(s.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyPaid returns true when nothing remains to pay
func (s *Sale) IsFullyPaid() bool {
	return s.RemainingAmount().IsZero()
}

// HasItems returns true when the sale has at least one line
func (s *Sale) HasItems() bool {
	return len(s.Items) > 0
}

func (s *Sale) findItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

func (s *Sale) recalculateTotals() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].Subtotal)
	}
	s.TotalAmount = total
}

func validatePaymentType(t PaymentType) error {
	switch t {
	case PaymentTypeCash, PaymentTypeBankTransfer, PaymentTypeCredit:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be 'cash', 'bank_transfer' or 'credit'")
	}
}
