package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	customerID := uuid.New()
	receivedBy := uuid.New()

	t.Run("creates general debt payment", func(t *testing.T) {
		payment, err := NewPayment(customerID, nil, decimal.NewFromInt(50000), PaymentMethodCash, "", receivedBy)

		require.NoError(t, err)
		assert.Equal(t, customerID, payment.CustomerID)
		assert.False(t, payment.IsSaleTied())
		assert.Equal(t, PaymentMethodCash, payment.Method)
	})

	t.Run("creates sale-tied payment", func(t *testing.T) {
		saleID := uuid.New()
		payment, err := NewPayment(customerID, &saleID, decimal.NewFromInt(20000), PaymentMethodBankTransfer, "invoice 12", receivedBy)

		require.NoError(t, err)
		assert.True(t, payment.IsSaleTied())
		assert.Equal(t, saleID, *payment.SaleID)
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, nil, decimal.NewFromInt(100), PaymentMethodCash, "", receivedBy)
		assert.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewPayment(customerID, nil, decimal.Zero, PaymentMethodCash, "", receivedBy)
		assert.Error(t, err)

		_, err = NewPayment(customerID, nil, decimal.NewFromInt(-5), PaymentMethodCash, "", receivedBy)
		assert.Error(t, err)
	})

	t.Run("fails with invalid method", func(t *testing.T) {
		_, err := NewPayment(customerID, nil, decimal.NewFromInt(100), PaymentMethod("crypto"), "", receivedBy)
		assert.Error(t, err)
	})
}
