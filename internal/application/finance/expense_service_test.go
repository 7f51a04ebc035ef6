package finance

import (
	"context"
	"testing"
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.Expense, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByCategory(ctx context.Context, category finance.ExpenseCategory, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) TotalsByCategory(ctx context.Context, from, to time.Time) ([]finance.CategoryTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.CategoryTotal), args.Error(1)
}

func TestExpenseServiceCreate(t *testing.T) {
	ctx := context.Background()
	recordedBy := uuid.New()

	t.Run("records an expense", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

		resp, err := service.Create(ctx, CreateExpenseRequest{
			Category:    "electricity",
			Amount:      decimal.NewFromInt(450000),
			Description: "August electricity bill",
		}, recordedBy)

		require.NoError(t, err)
		assert.Equal(t, "electricity", resp.Category)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(450000)))
		assert.False(t, resp.SpentAt.IsZero())
		require.NotNil(t, resp.RecordedBy)
		assert.Equal(t, recordedBy, *resp.RecordedBy)
		repo.AssertExpectations(t)
	})

	t.Run("keeps an explicit spent date", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		spentAt := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

		repo.On("Save", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

		resp, err := service.Create(ctx, CreateExpenseRequest{
			Category:    "salary",
			Amount:      decimal.NewFromInt(3000000),
			Description: "Driver salary",
			SpentAt:     &spentAt,
		}, recordedBy)

		require.NoError(t, err)
		assert.True(t, resp.SpentAt.Equal(spentAt))
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)

		_, err := service.Create(ctx, CreateExpenseRequest{
			Category:    "gas",
			Amount:      decimal.Zero,
			Description: "gas",
		}, recordedBy)

		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestExpenseServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial changes", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		expense, err := finance.NewExpense(finance.ExpenseCategoryGas, decimal.NewFromInt(100000), "Gas refill", time.Now(), uuid.New())
		require.NoError(t, err)

		repo.On("FindByID", ctx, expense.ID).Return(expense, nil)
		repo.On("Save", ctx, expense).Return(nil)

		newAmount := decimal.NewFromInt(120000)
		resp, err := service.Update(ctx, expense.ID, UpdateExpenseRequest{Amount: &newAmount})

		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(newAmount))
		assert.Equal(t, "gas", resp.Category)
		assert.Equal(t, "Gas refill", resp.Description)
	})

	t.Run("fails when the expense does not exist", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		expenseID := uuid.New()

		repo.On("FindByID", ctx, expenseID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, expenseID, UpdateExpenseRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestExpenseServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by category", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		expense, err := finance.NewExpense(finance.ExpenseCategoryTransport, decimal.NewFromInt(80000), "Fuel", time.Now(), uuid.New())
		require.NoError(t, err)

		repo.On("FindByCategory", ctx, finance.ExpenseCategoryTransport, mock.AnythingOfType("shared.Filter")).Return([]finance.Expense{*expense}, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		result, err := service.List(ctx, ExpenseListFilter{Category: "transport"})

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, "transport", result.Items[0].Category)
	})

	t.Run("passes the date range through to the repository", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		rangeFilter := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["from"] == from && f.Filters["to"] == to
		})
		repo.On("FindAll", ctx, rangeFilter).Return([]finance.Expense{}, nil)
		repo.On("Count", ctx, rangeFilter).Return(int64(0), nil)

		result, err := service.List(ctx, ExpenseListFilter{From: &from, To: &to})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		repo.AssertExpectations(t)
	})
}

func TestExpenseServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing expense", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		expense, err := finance.NewExpense(finance.ExpenseCategoryOther, decimal.NewFromInt(5000), "Stationery", time.Now(), uuid.New())
		require.NoError(t, err)

		repo.On("FindByID", ctx, expense.ID).Return(expense, nil)
		repo.On("Delete", ctx, expense.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, expense.ID))
		repo.AssertExpectations(t)
	})

	t.Run("fails when the expense does not exist", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		service := NewExpenseService(repo)
		expenseID := uuid.New()

		repo.On("FindByID", ctx, expenseID).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, expenseID), shared.ErrNotFound)
	})
}
