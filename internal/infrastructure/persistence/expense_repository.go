package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(expenseModels), nil
}

// FindByPeriod finds expenses spent within [from, to)
func (r *GormExpenseRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Order("spent_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(expenseModels), nil
}

// FindByCategory finds expenses of the given category
func (r *GormExpenseRepository) FindByCategory(ctx context.Context, category finance.ExpenseCategory, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("category = ?", category),
		filter,
	)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(expenseModels), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ExpenseModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByPeriod totals expenses spent within [from, to)
func (r *GormExpenseRepository) SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Select("SUM(amount)").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// TotalsByCategory aggregates expenses per category within [from, to)
func (r *GormExpenseRepository) TotalsByCategory(ctx context.Context, from, to time.Time) ([]finance.CategoryTotal, error) {
	type row struct {
		Category finance.ExpenseCategory
		Total    decimal.Decimal
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Select("category, SUM(amount) AS total").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]finance.CategoryTotal, len(rows))
	for i, r := range rows {
		totals[i] = finance.CategoryTotal{Category: r.Category, Total: r.Total}
	}
	return totals, nil
}

func (r *GormExpenseRepository) toDomainSlice(expenseModels []models.ExpenseModel) []finance.Expense {
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses
}

// applyFilter applies filter options to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		query = query.Order("spent_at DESC")
	} else {
		orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "spent_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "from":
			query = query.Where("spent_at >= ?", value)
		case "to":
			query = query.Where("spent_at < ?", value)
		}
	}

	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
