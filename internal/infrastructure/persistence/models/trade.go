package models

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	CustomerID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Customer    *CustomerModel    `gorm:"foreignKey:CustomerID"`
	Items       []SaleItemModel   `gorm:"foreignKey:SaleID"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentType trade.PaymentType `gorm:"type:varchar(20);not null"`
	Notes       string            `gorm:"type:text"`
	SoldAt      time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is the persistence model for a sale line.
type SaleItemModel struct {
	BaseModel
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product          *ProductModel   `gorm:"foreignKey:ProductID"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity         int             `gorm:"not null"`
	ReturnedQuantity int             `gorm:"not null;default:0"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem entity.
func (m *SaleItemModel) ToDomain() trade.SaleItem {
	return trade.SaleItem{
		BaseEntity:       m.BaseModel.ToDomain(),
		SaleID:           m.SaleID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		UnitPrice:        m.UnitPrice,
		Quantity:         m.Quantity,
		ReturnedQuantity: m.ReturnedQuantity,
		Subtotal:         m.Subtotal,
	}
}

// FromDomain populates the persistence model from a domain SaleItem entity.
func (m *SaleItemModel) FromDomain(i *trade.SaleItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.SaleID = i.SaleID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.UnitPrice = i.UnitPrice
	m.Quantity = i.Quantity
	m.ReturnedQuantity = i.ReturnedQuantity
	m.Subtotal = i.Subtotal
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	items := make([]trade.SaleItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}

	customerName := ""
	if m.Customer != nil {
		customerName = m.Customer.Name
	}

	return &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		CustomerName:      customerName,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		PaymentType:       m.PaymentType,
		Notes:             m.Notes,
		SoldAt:            m.SoldAt,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.TotalAmount = s.TotalAmount
	m.PaidAmount = s.PaidAmount
	m.PaymentType = s.PaymentType
	m.Notes = s.Notes
	m.SoldAt = s.SoldAt

	m.Items = make([]SaleItemModel, len(s.Items))
	for i := range s.Items {
		m.Items[i].FromDomain(&s.Items[i])
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}
