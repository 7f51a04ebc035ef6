package report

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/report"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
)

const topDebtorCount = 5

// ReportService composes read models for the dashboard and the monthly
// reports. It only reads; every write path lives in its own context.
type ReportService struct {
	saleRepo     trade.SaleRepository
	paymentRepo  finance.PaymentRepository
	expenseRepo  finance.ExpenseRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	materialRepo inventory.RawMaterialRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	saleRepo trade.SaleRepository,
	paymentRepo finance.PaymentRepository,
	expenseRepo finance.ExpenseRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	materialRepo inventory.RawMaterialRepository,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
	}
}

// Dashboard builds the at-a-glance business summary
func (s *ReportService) Dashboard(ctx context.Context) (*report.DashboardStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	todaySales, err := s.saleRepo.SummaryByPeriod(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	todayPayments, err := s.paymentRepo.SumByPeriod(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	totalDebt, err := s.customerRepo.SumDebt(ctx)
	if err != nil {
		return nil, err
	}

	debtorCount, err := s.customerRepo.CountWithDebt(ctx)
	if err != nil {
		return nil, err
	}

	stockByType, err := s.stockByType(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.materialRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	topDebtors, err := s.topDebtors(ctx)
	if err != nil {
		return nil, err
	}

	weeklySales, err := s.weeklySales(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	return &report.DashboardStats{
		TodaySalesCount:    todaySales.SalesCount,
		TodaySalesTotal:    todaySales.TotalAmount,
		TodayPaymentsTotal: todayPayments,
		TotalDebt:          totalDebt,
		DebtorCount:        debtorCount,
		StockByType:        stockByType,
		LowStockCount:      int64(len(lowStock)),
		TopDebtors:         topDebtors,
		WeeklySales:        weeklySales,
	}, nil
}

// MonthlyExpenses breaks the given month's expenses down by category
func (s *ReportService) MonthlyExpenses(ctx context.Context, year, month int) (*report.MonthlyExpenseReport, error) {
	from, to, err := monthBounds(year, month)
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.SumByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.expenseRepo.TotalsByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &report.MonthlyExpenseReport{
		Year:       year,
		Month:      month,
		Total:      total,
		ByCategory: byCategory,
	}, nil
}

// Monthly builds the month-end financial summary. Profit is sales minus
// expenses regardless of payment. Net result is payments received minus
// expenses; unpaid sales only count there once paid.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (*report.MonthlyReport, error) {
	from, to, err := monthBounds(year, month)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.SummaryByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.SumByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.SumByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &report.MonthlyReport{
		Year:             year,
		Month:            month,
		SalesCount:       sales.SalesCount,
		SalesTotal:       sales.TotalAmount,
		PaymentsReceived: payments,
		ExpensesTotal:    expenses,
		Profit:           sales.TotalAmount.Sub(expenses),
		NetResult:        payments.Sub(expenses),
	}, nil
}

func (s *ReportService) stockByType(ctx context.Context) ([]report.StockByType, error) {
	sums, err := s.productRepo.SumStockByType(ctx)
	if err != nil {
		return nil, err
	}

	// Fixed order so the dashboard payload is stable
	types := []catalog.ProductType{catalog.ProductTypeBread, catalog.ProductTypeWater}
	result := make([]report.StockByType, 0, len(types))
	for _, t := range types {
		result = append(result, report.StockByType{Type: t, Quantity: sums[t]})
	}
	return result, nil
}

func (s *ReportService) topDebtors(ctx context.Context) ([]report.DebtorSummary, error) {
	filter := shared.Filter{
		Page:     1,
		PageSize: topDebtorCount,
		OrderBy:  "current_debt",
		OrderDir: "desc",
	}

	debtors, err := s.customerRepo.FindWithDebt(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]report.DebtorSummary, 0, len(debtors))
	for i := range debtors {
		result = append(result, report.DebtorSummary{
			CustomerID:   debtors[i].ID,
			CustomerName: debtors[i].Name,
			Phone:        debtors[i].Phone,
			CurrentDebt:  debtors[i].CurrentDebt,
		})
	}
	return result, nil
}

// weeklySales returns one point per day for the trailing seven days,
// today included, oldest first.
func (s *ReportService) weeklySales(ctx context.Context, todayStart time.Time) ([]report.DailySalesItem, error) {
	items := make([]report.DailySalesItem, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		dayStart := todayStart.AddDate(0, 0, -offset)
		dayEnd := dayStart.AddDate(0, 0, 1)

		summary, err := s.saleRepo.SummaryByPeriod(ctx, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		items = append(items, report.DailySalesItem{
			Date:        dayStart,
			SalesCount:  summary.SalesCount,
			TotalAmount: summary.TotalAmount,
		})
	}
	return items, nil
}

func monthBounds(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Year is out of range")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	return from, to, nil
}
