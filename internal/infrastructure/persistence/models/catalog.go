package models

import (
	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name          string              `gorm:"type:varchar(200);not null"`
	Type          catalog.ProductType `gorm:"type:varchar(20);not null;index"`
	Price         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Unit          string              `gorm:"type:varchar(20);not null;default:'dona'"`
	StockQuantity int                 `gorm:"not null;default:0"`
	Description   string              `gorm:"type:text"`
	IsActive      bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		Price:             m.Price,
		Unit:              m.Unit,
		StockQuantity:     m.StockQuantity,
		Description:       m.Description,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Type = p.Type
	m.Price = p.Price
	m.Unit = p.Unit
	m.StockQuantity = p.StockQuantity
	m.Description = p.Description
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
