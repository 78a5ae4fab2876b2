package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		require.Error(t, err)
	})

	t.Run("parses from string", func(t *testing.T) {
		m, err := NewMoneyUSDFromString("12.50")
		require.NoError(t, err)
		assert.Equal(t, "12.5 USD", m.String())

		_, err = NewMoneyUSDFromString("not money")
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	ten := NewMoneyUSDFromFloat(10)
	three := NewMoneyUSDFromFloat(3)
	eur, err := NewMoney(decimal.NewFromInt(5), EUR)
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		sum, err := ten.Add(three)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(13)))
	})

	t.Run("sub can go negative", func(t *testing.T) {
		diff, err := three.Sub(ten)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(-7)))
	})

	t.Run("mul by decimal and int", func(t *testing.T) {
		assert.True(t, ten.Mul(decimal.NewFromFloat(0.7)).Amount().Equal(decimal.NewFromInt(7)))
		assert.True(t, ten.MulInt(5).Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		_, err := ten.Add(eur)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency mismatch")

		_, err = ten.GreaterThan(eur)
		require.Error(t, err)
	})

	t.Run("comparisons", func(t *testing.T) {
		gt, err := ten.GreaterThan(three)
		require.NoError(t, err)
		assert.True(t, gt)

		assert.True(t, ten.Equals(NewMoneyUSD(decimal.NewFromInt(10))))
		assert.False(t, ten.Equals(three))
		assert.True(t, NewMoneyUSDFromFloat(0).IsZero())
		assert.True(t, ten.IsPositive())
	})
}
