package trade

import (
	"context"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// shipment touches. When a function is executed within a transaction
// scope, all repository operations are part of the same database
// transaction and are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a
// shipment needs within one transaction. All repositories returned
// share the same underlying database transaction, so an order status
// change and its stock decrements commit or roll back together.
type TransactionalRepositories interface {
	// Orders returns the sales order repository scoped to the current transaction
	Orders() trade.SalesOrderRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Offers returns the offer repository scoped to the current transaction
	Offers() offer.OfferRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	orderRepo   trade.SalesOrderRepository
	productRepo catalog.ProductRepository
	offerRepo   offer.OfferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	offerRepo offer.OfferRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		offerRepo:   offerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the sales order repository.
func (s *NoOpTransactionScope) Orders() trade.SalesOrderRepository {
	return s.orderRepo
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Offers returns the offer repository.
func (s *NoOpTransactionScope) Offers() offer.OfferRepository {
	return s.offerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
