package models

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for a payment record.
type PaymentModel struct {
	BaseModel
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Customer   *CustomerModel        `gorm:"foreignKey:CustomerID"`
	SaleID     *uuid.UUID            `gorm:"type:uuid;index"`
	Sale       *SaleModel            `gorm:"foreignKey:SaleID"`
	Amount     decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Method     finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Notes      string                `gorm:"type:text"`
	ReceivedBy uuid.UUID             `gorm:"type:uuid;not null;index"`
	ReceivedAt time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		SaleID:     m.SaleID,
		Amount:     m.Amount,
		Method:     m.Method,
		Notes:      m.Notes,
		ReceivedBy: m.ReceivedBy,
		ReceivedAt: m.ReceivedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CustomerID = p.CustomerID
	m.SaleID = p.SaleID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Notes = p.Notes
	m.ReceivedBy = p.ReceivedBy
	m.ReceivedAt = p.ReceivedAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	Category    finance.ExpenseCategory `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Description string                  `gorm:"type:text;not null"`
	SpentAt     time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Category:          m.Category,
		Amount:            m.Amount,
		Description:       m.Description,
		SpentAt:           m.SpentAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Category = e.Category
	m.Amount = e.Amount
	m.Description = e.Description
	m.SpentAt = e.SpentAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
