package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSalesOrderRepository(t *testing.T) (*GormSalesOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSalesOrderRepository(gormDB), mock, mockDB
}

func TestGormSalesOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockSalesOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		productID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "version",
			"target_kind", "product_id", "offer_id", "quantity",
			"status", "placed_at", "shipped_at",
			"total_price", "profit_before_tax", "profit_after_tax",
		}).AddRow(
			orderID, now, now, 1,
			"product", productID, nil, int64(5),
			"pending", now, nil,
			decimal.Zero, decimal.Zero, decimal.Zero,
		)

		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)

		order, err := repo.FindByID(context.Background(), orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, trade.TargetKindProduct, order.TargetKind)
		assert.True(t, order.IsPending())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockSalesOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSalesOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("returns ErrConcurrencyConflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockSalesOrderRepository(t)
		defer mockDB.Close()

		order, err := trade.NewSalesOrder(trade.SingleTarget(uuid.New()), 2)
		require.NoError(t, err)
		order.IncrementVersion() // simulates a domain mutation

		mock.ExpectExec(`UPDATE "sales_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), order)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
