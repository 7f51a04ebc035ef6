package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInboundMovement(t *testing.T) {
	materialID := uuid.New()
	userID := uuid.New()

	t.Run("creates inbound movement with cost", func(t *testing.T) {
		cost := decimal.NewFromInt(7000)
		movement, err := NewInboundMovement(materialID, decimal.NewFromInt(100), &cost, "weekly delivery", userID)

		require.NoError(t, err)
		assert.Equal(t, MovementTypeIn, movement.Type)
		assert.True(t, movement.IsInbound())
		assert.False(t, movement.IsOutbound())
		assert.Equal(t, materialID, movement.MaterialID)
		assert.Equal(t, userID, movement.PerformedBy)
		require.NotNil(t, movement.CostPerUnit)
		assert.True(t, movement.CostPerUnit.Equal(cost))
	})

	t.Run("creates inbound movement without cost", func(t *testing.T) {
		movement, err := NewInboundMovement(materialID, decimal.NewFromInt(10), nil, "", userID)

		require.NoError(t, err)
		assert.Nil(t, movement.CostPerUnit)
	})

	t.Run("fails with nil material", func(t *testing.T) {
		_, err := NewInboundMovement(uuid.Nil, decimal.NewFromInt(10), nil, "", userID)
		assert.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewInboundMovement(materialID, decimal.Zero, nil, "", userID)
		assert.Error(t, err)
	})

	t.Run("fails with negative cost", func(t *testing.T) {
		cost := decimal.NewFromInt(-1)
		_, err := NewInboundMovement(materialID, decimal.NewFromInt(10), &cost, "", userID)
		assert.Error(t, err)
	})
}

func TestNewOutboundMovement(t *testing.T) {
	materialID := uuid.New()
	userID := uuid.New()

	t.Run("creates outbound movement", func(t *testing.T) {
		movement, err := NewOutboundMovement(materialID, decimal.NewFromInt(25), "morning batch", userID)

		require.NoError(t, err)
		assert.Equal(t, MovementTypeOut, movement.Type)
		assert.True(t, movement.IsOutbound())
		assert.Nil(t, movement.CostPerUnit)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewOutboundMovement(materialID, decimal.NewFromInt(-3), "", userID)
		assert.Error(t, err)
	})
}
