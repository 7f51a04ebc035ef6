package partner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindWithDebt(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) CountWithDebt(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) SumDebt(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]trade.Sale, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]trade.Sale, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SummaryByPeriod(ctx context.Context, from, to time.Time) (*trade.DailySummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.DailySummary), args.Error(1)
}

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer successfully", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		repo.On("FindByPhone", ctx, "+998901234567").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:        "Oq Tegirmon Bakery",
			CompanyName: "Oq Tegirmon MChJ",
			Phone:       "+998901234567",
			Notes:       "wholesale",
		})

		require.NoError(t, err)
		assert.Equal(t, "Oq Tegirmon Bakery", resp.Name)
		assert.Equal(t, "Oq Tegirmon MChJ", resp.CompanyName)
		assert.Equal(t, "wholesale", resp.Notes)
		assert.True(t, resp.CurrentDebt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		existing, _ := partner.NewCustomer("Bobur", "+998901234567", "")
		repo.On("FindByPhone", ctx, "+998901234567").Return(existing, nil)

		_, err := service.Create(ctx, CreateCustomerRequest{
			Name:  "Someone Else",
			Phone: "+998901234567",
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates domain validation error", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		_, err := service.Create(ctx, CreateCustomerRequest{Name: ""})
		assert.Error(t, err)
	})
}

func TestCustomerServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		customer, _ := partner.NewCustomer("Bobur", "", "")
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		resp, err := service.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, customer.ID, resp.ID)
	})

	t.Run("returns not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("lists customers with pagination", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		c1, _ := partner.NewCustomer("Bobur", "", "")
		c2, _ := partner.NewCustomer("Aziza", "", "")
		repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]partner.Customer{*c1, *c2}, nil)
		repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

		result, err := service.List(ctx, CustomerListFilter{})
		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(2), result.Total)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("lists only debtors when requested", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		debtor, _ := partner.NewCustomer("Bobur", "", "")
		require.NoError(t, debtor.IncreaseDebt(decimal.NewFromInt(50000)))
		repo.On("FindWithDebt", ctx, mock.AnythingOfType("shared.Filter")).Return([]partner.Customer{*debtor}, nil)
		repo.On("CountWithDebt", ctx).Return(int64(1), nil)

		result, err := service.ListDebtors(ctx, CustomerListFilter{})
		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.True(t, result.Items[0].CurrentDebt.Equal(decimal.NewFromInt(50000)))
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only provided fields", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		customer, _ := partner.NewCustomer("Bobur", "+998901234567", "Tashkent")
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("SaveWithLock", ctx, customer).Return(nil)

		newName := "Bobur Karimov"
		companyName := "Karimov Savdo MChJ"
		resp, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Name: &newName, CompanyName: &companyName})

		require.NoError(t, err)
		assert.Equal(t, "Bobur Karimov", resp.Name)
		assert.Equal(t, "Karimov Savdo MChJ", resp.CompanyName)
		assert.Equal(t, "+998901234567", resp.Phone)
		assert.Equal(t, "Tashkent", resp.Address)
	})

	t.Run("surfaces concurrency conflict", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		customer, _ := partner.NewCustomer("Bobur", "", "")
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("SaveWithLock", ctx, customer).Return(shared.ErrConcurrencyConflict)

		newName := "Changed"
		_, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Name: &newName})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes debt-free customer without sales", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		saleRepo := new(MockSaleRepository)
		service := NewCustomerService(repo, saleRepo)

		customer, _ := partner.NewCustomer("Bobur", "", "")
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		saleRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
		repo.On("Delete", ctx, customer.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, customer.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses to delete a debtor", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		customer, _ := partner.NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(10000)))
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		err := service.Delete(ctx, customer.ID)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("refuses to delete a customer with recorded sales", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		saleRepo := new(MockSaleRepository)
		service := NewCustomerService(repo, saleRepo)

		customer, _ := partner.NewCustomer("Bobur", "", "")
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		saleRepo.On("Count", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["customer_id"] == customer.ID
		})).Return(int64(3), nil)

		err := service.Delete(ctx, customer.ID)
		assert.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("searches by query, capped at ten results", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, new(MockSaleRepository))

		c1, _ := partner.NewCustomer("Bobur", "", "")
		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Search == "Bob" && f.PageSize == 10
		})).Return([]partner.Customer{*c1}, nil)

		results, err := service.Search(ctx, "Bob")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Bobur", results[0].Name)
	})
}
