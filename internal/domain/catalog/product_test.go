package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct("Obi non", ProductTypeBread, decimal.NewFromInt(4000), "dona")

		require.NoError(t, err)
		assert.Equal(t, "Obi non", product.Name)
		assert.Equal(t, ProductTypeBread, product.Type)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(4000)))
		assert.Equal(t, "dona", product.Unit)
		assert.Equal(t, 0, product.StockQuantity)
		assert.True(t, product.IsActive)
	})

	t.Run("defaults unit when omitted", func(t *testing.T) {
		product, err := NewProduct("Suv 19L", ProductTypeWater, decimal.NewFromInt(15000), "")

		require.NoError(t, err)
		assert.Equal(t, DefaultProductUnit, product.Unit)
	})

	t.Run("fails with overlong unit", func(t *testing.T) {
		product, err := NewProduct("Obi non", ProductTypeBread, decimal.NewFromInt(4000), "a very long unit name indeed")

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		product, err := NewProduct("", ProductTypeBread, decimal.NewFromInt(4000), "dona")

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		product, err := NewProduct("Obi non", ProductType("cake"), decimal.NewFromInt(4000), "dona")

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Contains(t, err.Error(), "'non' or 'suv'")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product, err := NewProduct("Obi non", ProductTypeBread, decimal.NewFromInt(-1), "dona")

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("add stock increases quantity", func(t *testing.T) {
		product, _ := NewProduct("Suv 1.5L", ProductTypeWater, decimal.NewFromInt(2000), "dona")

		require.NoError(t, product.AddStock(100))
		assert.Equal(t, 100, product.StockQuantity)
		assert.True(t, product.HasStock(100))
		assert.False(t, product.HasStock(101))
	})

	t.Run("add stock rejects non-positive quantity", func(t *testing.T) {
		product, _ := NewProduct("Suv 1.5L", ProductTypeWater, decimal.NewFromInt(2000), "dona")

		assert.Error(t, product.AddStock(0))
		assert.Error(t, product.AddStock(-5))
	})

	t.Run("remove stock decreases quantity", func(t *testing.T) {
		product, _ := NewProduct("Suv 1.5L", ProductTypeWater, decimal.NewFromInt(2000), "dona")
		require.NoError(t, product.AddStock(100))

		require.NoError(t, product.RemoveStock(40))
		assert.Equal(t, 60, product.StockQuantity)
	})

	t.Run("remove stock fails on insufficient stock", func(t *testing.T) {
		product, _ := NewProduct("Suv 1.5L", ProductTypeWater, decimal.NewFromInt(2000), "dona")
		require.NoError(t, product.AddStock(10))

		err := product.RemoveStock(11)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, 10, product.StockQuantity)
	})
}

func TestProductUpdate(t *testing.T) {
	product, _ := NewProduct("Obi non", ProductTypeBread, decimal.NewFromInt(4000), "dona")

	before := product.GetVersion()
	err := product.Update("Patir non", ProductTypeBread, decimal.NewFromInt(5000), "dona", "dense flatbread")

	require.NoError(t, err)
	assert.Equal(t, "Patir non", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "dense flatbread", product.Description)
	assert.Equal(t, before+1, product.GetVersion())
}
