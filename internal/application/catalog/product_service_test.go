package catalog

import (
	"context"
	"testing"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByType(ctx context.Context, productType catalog.ProductType, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, productType, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SumStockByType(ctx context.Context) (map[catalog.ProductType]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[catalog.ProductType]int), args.Error(1)
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:  "Obi non",
			Type:  "non",
			Price: decimal.NewFromInt(4000),
		})

		require.NoError(t, err)
		assert.Equal(t, "Obi non", resp.Name)
		assert.Equal(t, "non", resp.Type)
		assert.Equal(t, 0, resp.StockQuantity)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:  "Cake",
			Type:  "cake",
			Price: decimal.NewFromInt(1),
		})
		assert.Error(t, err)
	})
}

func TestProductServiceUpdateStock(t *testing.T) {
	ctx := context.Background()

	build := func(stock int) *catalog.Product {
		product, _ := catalog.NewProduct("Suv 1.5L", catalog.ProductTypeWater, decimal.NewFromInt(2000), "dona")
		if stock > 0 {
			_ = product.AddStock(stock)
		}
		return product
	}

	t.Run("adds stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := build(10)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("SaveWithLock", ctx, product).Return(nil)

		resp, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{Quantity: 50, Operation: "add"})
		require.NoError(t, err)
		assert.Equal(t, 60, resp.StockQuantity)
	})

	t.Run("subtracts stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := build(10)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("SaveWithLock", ctx, product).Return(nil)

		resp, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{Quantity: 4, Operation: "subtract"})
		require.NoError(t, err)
		assert.Equal(t, 6, resp.StockQuantity)
	})

	t.Run("fails when subtracting more than held", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product := build(3)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{Quantity: 4, Operation: "subtract"})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	service := NewProductService(repo)

	product, _ := catalog.NewProduct("Obi non", catalog.ProductTypeBread, decimal.NewFromInt(4000), "dona")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("SaveWithLock", ctx, product).Return(nil)

	newPrice := decimal.NewFromInt(4500)
	resp, err := service.Update(ctx, product.ID, UpdateProductRequest{Price: &newPrice})

	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(newPrice))
	assert.Equal(t, "Obi non", resp.Name)
}
