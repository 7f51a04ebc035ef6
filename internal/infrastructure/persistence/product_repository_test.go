package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("returns not found for missing product", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	t.Run("writes the stock column even when it dropped to zero", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		product, err := catalog.NewProduct("Obi non", catalog.ProductTypeBread, decimal.NewFromInt(4000), "dona")
		require.NoError(t, err)
		require.NoError(t, product.AddStock(10))
		require.NoError(t, product.RemoveStock(10))
		require.Equal(t, 0, product.StockQuantity)

		mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=.* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		product, err := catalog.NewProduct("Obi non", catalog.ProductTypeBread, decimal.NewFromInt(4000), "dona")
		require.NoError(t, err)
		require.NoError(t, product.AddStock(10))

		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), product)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
