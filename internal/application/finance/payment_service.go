package finance

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService handles customer payments against debt.
// Applying a payment touches the payment ledger, the affected sales and
// the customer balance; all of it happens inside one transaction.
type PaymentService struct {
	paymentRepo finance.PaymentRepository
	txScope     TransactionScope
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo finance.PaymentRepository, txScope TransactionScope) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		txScope:     txScope,
	}
}

// AddPayment records money received from a customer. A sale-tied payment
// settles that sale's remainder; a general payment pays down the
// customer's unpaid sales oldest first. Either way the customer's debt
// drops by the paid amount. receivedBy is the authenticated user.
func (s *PaymentService) AddPayment(ctx context.Context, req AddPaymentRequest, receivedBy uuid.UUID) (*PaymentResponse, error) {
	var response PaymentResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.CustomerRepo().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		payment, err := finance.NewPayment(customer.ID, req.SaleID, req.Amount, finance.PaymentMethod(req.Method), req.Notes, receivedBy)
		if err != nil {
			return err
		}

		if req.SaleID != nil {
			sale, err := repos.SaleRepo().FindByID(ctx, *req.SaleID)
			if err != nil {
				return err
			}
			if sale.CustomerID != customer.ID {
				return shared.NewDomainError("INVALID_INPUT", "Sale does not belong to this customer")
			}
			if err := sale.AddPayment(req.Amount); err != nil {
				return err
			}
			if err := repos.SaleRepo().SaveWithLock(ctx, sale); err != nil {
				return err
			}
		} else {
			if req.Amount.GreaterThan(customer.CurrentDebt) {
				return shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds the customer's outstanding debt")
			}

			unpaid, err := repos.SaleRepo().FindUnpaidByCustomer(ctx, customer.ID)
			if err != nil {
				return err
			}

			toApply := req.Amount
			for i := range unpaid {
				if !toApply.IsPositive() {
					break
				}
				sale := &unpaid[i]
				portion := sale.RemainingAmount()
				if toApply.LessThan(portion) {
					portion = toApply
				}
				if err := sale.AddPayment(portion); err != nil {
					return err
				}
				if err := repos.SaleRepo().SaveWithLock(ctx, sale); err != nil {
					return err
				}
				toApply = toApply.Sub(portion)
			}
		}

		if err := customer.DecreaseDebt(req.Amount); err != nil {
			return err
		}
		if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		response = ToPaymentResponse(payment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "received_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}

	var (
		payments []finance.Payment
		err      error
	)
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
		payments, err = s.paymentRepo.FindByCustomer(ctx, *filter.CustomerID, domainFilter)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToPaymentResponses(payments), total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}
