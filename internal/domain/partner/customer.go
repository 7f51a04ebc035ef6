package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer represents a wholesale or retail buyer in the partner context.
// It is the aggregate root for customer-related operations and carries the
// running debt balance that sales and payments adjust.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string
	CompanyName string
	Phone       string
	Address     string
	Notes       string
	CurrentDebt decimal.Decimal
	IsActive    bool
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, phone, address string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}
	if address != "" && len(address) > 500 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             phone,
		Address:           address,
		CurrentDebt:       decimal.Zero,
		IsActive:          true,
	}, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, address string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCompanyName sets the legal entity name for customers buying on behalf
// of an organization.
func (c *Customer) SetCompanyName(companyName string) error {
	companyName = strings.TrimSpace(companyName)
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	c.CompanyName = companyName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IncreaseDebt adds the unpaid remainder of a sale to the customer's debt
func (c *Customer) IncreaseDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}

	c.CurrentDebt = c.CurrentDebt.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// DecreaseDebt reduces the customer's debt, never below zero.
// Payments and sale returns call this with the settled amount.
func (c *Customer) DecreaseDebt(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}

	c.CurrentDebt = c.CurrentDebt.Sub(amount)
	if c.CurrentDebt.IsNegative() {
		c.CurrentDebt = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// HasDebt returns true if the customer owes anything
func (c *Customer) HasDebt() bool {
	return c.CurrentDebt.GreaterThan(decimal.Zero)
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Validation functions

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
