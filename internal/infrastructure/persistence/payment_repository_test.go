package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_Save(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	payment, err := finance.NewPayment(uuid.New(), nil, decimal.NewFromInt(25000), finance.PaymentMethodCash, "", uuid.New())
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "payments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), payment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_SumByPeriod(t *testing.T) {
	t.Run("returns total for period", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		rows := sqlmock.NewRows([]string{"sum"}).AddRow("480000")
		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "payments" WHERE received_at >= \$1 AND received_at < \$2`).
			WillReturnRows(rows)

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
		to := from.AddDate(0, 1, 0)
		total, err := repo.SumByPeriod(context.Background(), from, to)

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(480000)))
	})

	t.Run("returns zero when no payments in period", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		rows := sqlmock.NewRows([]string{"sum"}).AddRow(nil)
		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "payments"`).
			WillReturnRows(rows)

		total, err := repo.SumByPeriod(context.Background(), time.Now(), time.Now())

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormExpenseRepository_TotalsByCategory(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormExpenseRepository(gormDB)

	rows := sqlmock.NewRows([]string{"category", "total"}).
		AddRow("electricity", "500000").
		AddRow("gas", "400000")

	mock.ExpectQuery(`SELECT category, SUM\(amount\) AS total FROM "expenses"`).
		WillReturnRows(rows)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	totals, err := repo.TotalsByCategory(context.Background(), from, from.AddDate(0, 1, 0))

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, finance.ExpenseCategoryElectricity, totals[0].Category)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(500000)))
}
