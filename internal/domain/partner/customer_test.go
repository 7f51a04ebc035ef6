package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer("Oq Tegirmon Bakery", "+998901234567", "Tashkent, Chilonzor 5")

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Oq Tegirmon Bakery", customer.Name)
		assert.Equal(t, "+998901234567", customer.Phone)
		assert.True(t, customer.CurrentDebt.IsZero())
		assert.True(t, customer.IsActive)
		assert.Equal(t, 1, customer.GetVersion())
	})

	t.Run("trims whitespace from name", func(t *testing.T) {
		customer, err := NewCustomer("  Bobur  ", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Bobur", customer.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("", "+998901234567", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid phone", func(t *testing.T) {
		customer, err := NewCustomer("Bobur", "not-a-phone!", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "phone")
	})
}

func TestCustomerUpdate(t *testing.T) {
	customer, _ := NewCustomer("Bobur", "+998901234567", "Tashkent")

	t.Run("updates fields and bumps version", func(t *testing.T) {
		before := customer.GetVersion()
		err := customer.Update("Bobur Karimov", "+998907654321", "Samarkand")

		require.NoError(t, err)
		assert.Equal(t, "Bobur Karimov", customer.Name)
		assert.Equal(t, "+998907654321", customer.Phone)
		assert.Equal(t, "Samarkand", customer.Address)
		assert.Equal(t, before+1, customer.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := customer.Update("", "", "")
		assert.Error(t, err)
	})
}

func TestCustomerDebt(t *testing.T) {
	t.Run("increase adds to current debt", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")

		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(50000)))
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(25000)))

		assert.True(t, customer.CurrentDebt.Equal(decimal.NewFromInt(75000)))
		assert.True(t, customer.HasDebt())
	})

	t.Run("increase rejects negative amount", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")

		err := customer.IncreaseDebt(decimal.NewFromInt(-10))
		assert.Error(t, err)
	})

	t.Run("increase with zero is a no-op", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")
		before := customer.GetVersion()

		require.NoError(t, customer.IncreaseDebt(decimal.Zero))
		assert.True(t, customer.CurrentDebt.IsZero())
		assert.Equal(t, before, customer.GetVersion())
	})

	t.Run("decrease reduces debt", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(100000)))

		require.NoError(t, customer.DecreaseDebt(decimal.NewFromInt(40000)))
		assert.True(t, customer.CurrentDebt.Equal(decimal.NewFromInt(60000)))
	})

	t.Run("decrease never goes below zero", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")
		require.NoError(t, customer.IncreaseDebt(decimal.NewFromInt(30000)))

		require.NoError(t, customer.DecreaseDebt(decimal.NewFromInt(50000)))
		assert.True(t, customer.CurrentDebt.IsZero())
		assert.False(t, customer.HasDebt())
	})

	t.Run("decrease rejects negative amount", func(t *testing.T) {
		customer, _ := NewCustomer("Bobur", "", "")

		err := customer.DecreaseDebt(decimal.NewFromInt(-10))
		assert.Error(t, err)
	})
}

func TestCustomerActivation(t *testing.T) {
	customer, _ := NewCustomer("Bobur", "", "")

	t.Run("deactivate then activate", func(t *testing.T) {
		require.NoError(t, customer.Deactivate())
		assert.False(t, customer.IsActive)

		require.NoError(t, customer.Activate())
		assert.True(t, customer.IsActive)
	})

	t.Run("activate fails when already active", func(t *testing.T) {
		err := customer.Activate()
		assert.Error(t, err)
	})

	t.Run("deactivate fails when already inactive", func(t *testing.T) {
		require.NoError(t, customer.Deactivate())
		err := customer.Deactivate()
		assert.Error(t, err)
	})
}
