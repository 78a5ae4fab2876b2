package persistence

import (
	"context"

	"github.com/stockroom/backend/internal/application/trade"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	domtrade "github.com/stockroom/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM's
// transaction support. All repository operations within Execute share
// one database transaction and commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos trade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one
// in-flight transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Orders() domtrade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Offers() offer.OfferRepository {
	return NewGormOfferRepository(r.tx)
}

// Ensure the implementations satisfy the application interfaces
var _ trade.TransactionScope = (*GormTransactionScope)(nil)
var _ trade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
