package models

import (
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	CompanyName string          `gorm:"type:varchar(200)"`
	Phone       string          `gorm:"type:varchar(50);index"`
	Address     string          `gorm:"type:varchar(500)"`
	Notes       string          `gorm:"type:text"`
	CurrentDebt decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		CompanyName:       m.CompanyName,
		Phone:             m.Phone,
		Address:           m.Address,
		Notes:             m.Notes,
		CurrentDebt:       m.CurrentDebt,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.CompanyName = c.CompanyName
	m.Phone = c.Phone
	m.Address = c.Address
	m.Notes = c.Notes
	m.CurrentDebt = c.CurrentDebt
	m.IsActive = c.IsActive
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
