package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone":        true,
	"current_debt": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"type":           true,
	"price":          true,
	"stock_quantity": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"sold_at":      true,
	"total_amount": true,
	"paid_amount":  true,
}

// MaterialSortFields contains allowed sort fields for raw materials
var MaterialSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"quantity":   true,
}

// MovementSortFields contains allowed sort fields for warehouse movements
var MovementSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"occurred_at": true,
	"quantity":    true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"received_at": true,
	"amount":      true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"spent_at":   true,
	"amount":     true,
	"category":   true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"role":          true,
	"last_login_at": true,
}
