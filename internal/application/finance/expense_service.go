package finance

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseService handles operating expense use cases
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
	}
}

// Create records a new expense. recordedBy is the authenticated user.
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest, recordedBy uuid.UUID) (*ExpenseResponse, error) {
	var spentAt time.Time
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := finance.NewExpense(finance.ExpenseCategory(req.Category), req.Amount, req.Description, spentAt, recordedBy)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) (*shared.Paginated[ExpenseResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "spent_at"
		domainFilter.OrderDir = "desc"
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}

	var (
		expenses []finance.Expense
		err      error
	)
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
		expenses, err = s.expenseRepo.FindByCategory(ctx, finance.ExpenseCategory(filter.Category), domainFilter)
	} else {
		expenses, err = s.expenseRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToExpenseResponses(expenses), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates an existing expense
func (s *ExpenseService) Update(ctx context.Context, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	category := expense.Category
	if req.Category != nil {
		category = finance.ExpenseCategory(*req.Category)
	}
	amount := expense.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	description := expense.Description
	if req.Description != nil {
		description = *req.Description
	}
	spentAt := expense.SpentAt
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	if err := expense.Update(category, amount, description, spentAt); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense record
func (s *ExpenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, expenseID); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, expenseID)
}
