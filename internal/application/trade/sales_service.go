package trade

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// SalesService handles sale recording, listing and returns.
// Stock, sale and customer debt changes happen inside one transaction
// so a failure at any step leaves nothing half-applied.
type SalesService struct {
	saleRepo trade.SaleRepository
	txScope  TransactionScope
}

// NewSalesService creates a new SalesService
func NewSalesService(saleRepo trade.SaleRepository, txScope TransactionScope) *SalesService {
	return &SalesService{
		saleRepo: saleRepo,
		txScope:  txScope,
	}
}

// Create records a sale for a customer. Product stock is decremented per
// item and the unpaid remainder is added to the customer's debt.
// soldBy is the authenticated user recording the sale.
func (s *SalesService) Create(ctx context.Context, req CreateSaleRequest, soldBy uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.CustomerRepo().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		sale, err := trade.NewSale(customer.ID, trade.PaymentType(req.PaymentType), req.Notes, soldBy)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := product.RemoveStock(line.Quantity); err != nil {
				return err
			}
			if err := sale.AddItem(product.ID, product.Name, line.UnitPrice, line.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := sale.SetInitialPayment(req.PaidAmount); err != nil {
			return err
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		remaining := sale.RemainingAmount()
		if remaining.IsPositive() {
			if err := customer.IncreaseDebt(remaining); err != nil {
				return err
			}
			if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
				return err
			}
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// ReturnItems takes back sold items. Stock is restored, the sale total
// shrinks, any overpaid amount becomes a cash refund, and the customer's
// debt drops by however much the sale's unpaid remainder shrank.
func (s *SalesService) ReturnItems(ctx context.Context, saleID uuid.UUID, req ReturnItemsRequest) (*ReturnItemsResponse, error) {
	var response ReturnItemsResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}

		remainingBefore := sale.RemainingAmount()

		lines := make([]trade.ReturnLine, len(req.Items))
		returnedByProduct := make(map[uuid.UUID]int)
		for i, line := range req.Items {
			lines[i] = trade.ReturnLine{SaleItemID: line.SaleItemID, Quantity: line.Quantity}
		}

		refund, err := sale.ReturnItems(lines)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			for j := range sale.Items {
				if sale.Items[j].ID == line.SaleItemID {
					returnedByProduct[sale.Items[j].ProductID] += line.Quantity
				}
			}
		}
		for productID, quantity := range returnedByProduct {
			product, err := repos.ProductRepo().FindByID(ctx, productID)
			if err != nil {
				// The product may have been deleted since the sale; stock
				// cannot be restored for it but the return still stands.
				if err == shared.ErrNotFound {
					continue
				}
				return err
			}
			if err := product.AddStock(quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.SaleRepo().SaveWithLock(ctx, sale); err != nil {
			return err
		}

		debtReduced := remainingBefore.Sub(sale.RemainingAmount())
		if debtReduced.IsPositive() {
			customer, err := repos.CustomerRepo().FindByID(ctx, sale.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.DecreaseDebt(debtReduced); err != nil {
				return err
			}
			if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
				return err
			}
		}

		response = ReturnItemsResponse{
			Sale:         ToSaleResponse(sale),
			RefundAmount: refund,
			DebtReduced:  debtReduced,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// GetByID retrieves a sale with its items
func (s *SalesService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SalesService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "sold_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}

	var (
		sales []trade.Sale
		err   error
	)
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
		sales, err = s.saleRepo.FindByCustomer(ctx, *filter.CustomerID, domainFilter)
	} else {
		sales, err = s.saleRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToSaleResponses(sales), total, filter.Page, filter.PageSize)
	return &result, nil
}

// TodaysSummary aggregates today's sales figures
func (s *SalesService) TodaysSummary(ctx context.Context) (*DailySummaryResponse, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	summary, err := s.saleRepo.SummaryByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &DailySummaryResponse{
		Date:        start,
		SalesCount:  summary.SalesCount,
		TotalAmount: summary.TotalAmount,
		PaidAmount:  summary.PaidAmount,
	}, nil
}
