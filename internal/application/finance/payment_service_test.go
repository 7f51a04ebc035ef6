package finance

import (
	"context"
	"testing"
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.Payment, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
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

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
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

type paymentFixture struct {
	paymentRepo  *MockPaymentRepository
	saleRepo     *MockSaleRepository
	customerRepo *MockCustomerRepository
	service      *PaymentService
}

func newPaymentFixture() *paymentFixture {
	paymentRepo := new(MockPaymentRepository)
	saleRepo := new(MockSaleRepository)
	customerRepo := new(MockCustomerRepository)
	scope := NewNoOpTransactionScope(paymentRepo, saleRepo, customerRepo)

	return &paymentFixture{
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		service:      NewPaymentService(paymentRepo, scope),
	}
}

func newUnpaidSale(t *testing.T, customerID uuid.UUID, total, paid int64) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(customerID, trade.PaymentTypeCredit, "", uuid.New())
	require.NoError(t, err)
	require.NoError(t, sale.AddItem(uuid.New(), "Obi non", decimal.NewFromInt(total), 1))
	if paid > 0 {
		require.NoError(t, sale.SetInitialPayment(decimal.NewFromInt(paid)))
	}
	return sale
}

func TestPaymentServiceAddPayment(t *testing.T) {
	ctx := context.Background()
	receivedBy := uuid.New()

	t.Run("sale-tied payment settles the sale and reduces debt", func(t *testing.T) {
		f := newPaymentFixture()
		customer, _ := partner.NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(25000)))
		sale := newUnpaidSale(t, customer.ID, 25000, 0)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		f.saleRepo.On("SaveWithLock", ctx, sale).Return(nil)
		f.customerRepo.On("SaveWithLock", ctx, customer).Return(nil)
		f.paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)

		resp, err := f.service.AddPayment(ctx, AddPaymentRequest{
			CustomerID: customer.ID,
			SaleID:     &sale.ID,
			Amount:     decimal.NewFromInt(10000),
			Method:     "cash",
		}, receivedBy)

		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(10000)))
		assert.Equal(t, receivedBy, resp.ReceivedBy)
		assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(10000)))
		assert.True(t, customer.CurrentDebt.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("rejects a payment against another customer's sale", func(t *testing.T) {
		f := newPaymentFixture()
		customer, _ := partner.NewCustomer("Bobur", "", "")
		sale := newUnpaidSale(t, uuid.New(), 25000, 0)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := f.service.AddPayment(ctx, AddPaymentRequest{
			CustomerID: customer.ID,
			SaleID:     &sale.ID,
			Amount:     decimal.NewFromInt(10000),
			Method:     "cash",
		}, receivedBy)

		assert.Error(t, err)
		f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("general payment pays down unpaid sales oldest first", func(t *testing.T) {
		f := newPaymentFixture()
		customer, _ := partner.NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(30000)))
		old := newUnpaidSale(t, customer.ID, 10000, 0)
		recent := newUnpaidSale(t, customer.ID, 20000, 0)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.saleRepo.On("FindUnpaidByCustomer", ctx, customer.ID).Return([]trade.Sale{*old, *recent}, nil)
		f.saleRepo.On("SaveWithLock", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.customerRepo.On("SaveWithLock", ctx, customer).Return(nil)
		f.paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)

		resp, err := f.service.AddPayment(ctx, AddPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(15000),
			Method:     "bank_transfer",
		}, receivedBy)

		require.NoError(t, err)
		assert.Nil(t, resp.SaleID)
		assert.True(t, customer.CurrentDebt.Equal(decimal.NewFromInt(15000)))
		f.saleRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})

	t.Run("rejects a general payment above the customer's debt", func(t *testing.T) {
		f := newPaymentFixture()
		customer, _ := partner.NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(5000)))

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := f.service.AddPayment(ctx, AddPaymentRequest{
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(6000),
			Method:     "cash",
		}, receivedBy)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when the customer does not exist", func(t *testing.T) {
		f := newPaymentFixture()
		customerID := uuid.New()

		f.customerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.AddPayment(ctx, AddPaymentRequest{
			CustomerID: customerID,
			Amount:     decimal.NewFromInt(1000),
			Method:     "cash",
		}, receivedBy)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPaymentServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("lists payments for a customer", func(t *testing.T) {
		f := newPaymentFixture()
		customerID := uuid.New()
		payment, err := finance.NewPayment(customerID, nil, decimal.NewFromInt(5000), finance.PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		f.paymentRepo.On("FindByCustomer", ctx, customerID, mock.AnythingOfType("shared.Filter")).Return([]finance.Payment{*payment}, nil)
		f.paymentRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		result, err := f.service.List(ctx, PaymentListFilter{CustomerID: &customerID})

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, int64(1), result.Total)
	})

	t.Run("lists all payments when no customer filter is given", func(t *testing.T) {
		f := newPaymentFixture()

		f.paymentRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]finance.Payment{}, nil)
		f.paymentRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		result, err := f.service.List(ctx, PaymentListFilter{})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}
