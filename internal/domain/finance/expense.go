package finance

import (
	"strings"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a business expense
type ExpenseCategory string

const (
	ExpenseCategoryElectricity  ExpenseCategory = "electricity"
	ExpenseCategoryGas          ExpenseCategory = "gas"
	ExpenseCategorySalary       ExpenseCategory = "salary"
	ExpenseCategoryUtilities    ExpenseCategory = "utilities"
	ExpenseCategoryRawMaterials ExpenseCategory = "raw_materials"
	ExpenseCategoryMaintenance  ExpenseCategory = "maintenance"
	ExpenseCategoryTransport    ExpenseCategory = "transport"
	ExpenseCategoryOther        ExpenseCategory = "other"
)

// Expense represents an operating cost of the business
type Expense struct {
	shared.BaseAggregateRoot
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Description string
	SpentAt     time.Time
}

// NewExpense records a business expense
func NewExpense(category ExpenseCategory, amount decimal.Decimal, description string, spentAt time.Time, recordedBy uuid.UUID) (*Expense, error) {
	if err := validateExpenseCategory(category); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(recordedBy),
		Category:          category,
		Amount:            amount,
		Description:       strings.TrimSpace(description),
		SpentAt:           spentAt,
	}, nil
}

// Update changes the expense's details
func (e *Expense) Update(category ExpenseCategory, amount decimal.Decimal, description string, spentAt time.Time) error {
	if err := validateExpenseCategory(category); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}

	e.Category = category
	e.Amount = amount
	e.Description = strings.TrimSpace(description)
	if !spentAt.IsZero() {
		e.SpentAt = spentAt
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

func validateExpenseCategory(c ExpenseCategory) error {
	switch c {
	case ExpenseCategoryElectricity, ExpenseCategoryGas, ExpenseCategorySalary,
		ExpenseCategoryUtilities, ExpenseCategoryRawMaterials, ExpenseCategoryMaintenance,
		ExpenseCategoryTransport, ExpenseCategoryOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
}
