package report

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is a read model summarizing the business at a glance
type DashboardStats struct {
	TodaySalesCount    int64            `json:"today_sales_count"`
	TodaySalesTotal    decimal.Decimal  `json:"today_sales_total"`
	TodayPaymentsTotal decimal.Decimal  `json:"today_payments_total"`
	TotalDebt          decimal.Decimal  `json:"total_debt"`
	DebtorCount        int64            `json:"debtor_count"`
	StockByType        []StockByType    `json:"stock_by_type"`
	LowStockCount      int64            `json:"low_stock_count"`
	TopDebtors         []DebtorSummary  `json:"top_debtors"`
	WeeklySales        []DailySalesItem `json:"weekly_sales"`
}

// StockByType is the total sellable stock per product type
type StockByType struct {
	Type     catalog.ProductType `json:"type"`
	Quantity int                 `json:"quantity"`
}

// DebtorSummary identifies a customer and what they owe
type DebtorSummary struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	CurrentDebt  decimal.Decimal `json:"current_debt"`
}

// DailySalesItem is one point of the trailing sales series
type DailySalesItem struct {
	Date        time.Time       `json:"date"`
	SalesCount  int64           `json:"sales_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// MonthlyExpenseReport breaks a month's expenses down by category
type MonthlyExpenseReport struct {
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	Total      decimal.Decimal         `json:"total"`
	ByCategory []finance.CategoryTotal `json:"by_category"`
}

// MonthlyReport is the month-end financial summary. Profit is accrual
// based (sales minus expenses); NetResult is cash based (payments
// received minus expenses).
type MonthlyReport struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	SalesCount       int64           `json:"sales_count"`
	SalesTotal       decimal.Decimal `json:"sales_total"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	ExpensesTotal    decimal.Decimal `json:"expenses_total"`
	Profit           decimal.Decimal `json:"profit"`
	NetResult        decimal.Decimal `json:"net_result"`
}
