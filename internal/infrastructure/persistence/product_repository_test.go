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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"name", "category_name", "supplier_name", "price", "cost", "stock",
	}
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(productColumns()).AddRow(
			productID, now, now, 1,
			"Laptop", "Electronics", "Electronics Supplier Inc.",
			decimal.NewFromInt(1000), decimal.NewFromInt(800), 50,
		)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, int64(50), product.Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	t.Run("decrements stock when guard passes", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1 WHERE id = \$2 AND stock >= \$3`).
			WithArgs(int64(5), productID, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementStock(context.Background(), productID, 5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInsufficientStock when guard rejects existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1 WHERE id = \$2 AND stock >= \$3`).
			WithArgs(int64(5), productID, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.DecrementStock(context.Background(), productID, 5)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when product does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1 WHERE id = \$2 AND stock >= \$3`).
			WithArgs(int64(5), productID, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.DecrementStock(context.Background(), productID, 5)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	t.Run("returns empty slice without querying for no IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.FindByIDs(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
