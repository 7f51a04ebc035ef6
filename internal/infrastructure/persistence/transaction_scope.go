package persistence

import (
	"context"

	financeapp "github.com/bakeryops/backend/internal/application/finance"
	inventoryapp "github.com/bakeryops/backend/internal/application/inventory"
	tradeapp "github.com/bakeryops/backend/internal/application/trade"
	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/finance"
	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade TransactionScope over a
// GORM database transaction. Every repository handed to the callback is
// bound to the same transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos tradeapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeTxRepositories{tx: tx})
	})
}

type tradeTxRepositories struct {
	tx *gorm.DB
}

func (r *tradeTxRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *tradeTxRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *tradeTxRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// GormFinanceTransactionScope implements the finance TransactionScope
// over a GORM database transaction.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos financeapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&financeTxRepositories{tx: tx})
	})
}

type financeTxRepositories struct {
	tx *gorm.DB
}

func (r *financeTxRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *financeTxRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *financeTxRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// GormInventoryTransactionScope implements the inventory TransactionScope
// over a GORM database transaction.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos inventoryapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTxRepositories{tx: tx})
	})
}

type inventoryTxRepositories struct {
	tx *gorm.DB
}

func (r *inventoryTxRepositories) MaterialRepo() inventory.RawMaterialRepository {
	return NewGormRawMaterialRepository(r.tx)
}

func (r *inventoryTxRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var _ tradeapp.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ financeapp.TransactionScope = (*GormFinanceTransactionScope)(nil)
var _ inventoryapp.TransactionScope = (*GormInventoryTransactionScope)(nil)
