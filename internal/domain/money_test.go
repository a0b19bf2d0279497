package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func eur(amount string) Money {
	return Money{
		Amount:   decimal.RequireFromString(amount),
		Currency: currency.EUR,
	}
}

func TestMoneyMul(t *testing.T) {
	total := eur("399.99").Mul(2)
	assert.Equal(t, "799.98", total.Amount.StringFixed(2))
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	usd := Money{Amount: decimal.New(1, 0), Currency: currency.USD}

	_, err := eur("1.00").Add(usd)
	require.ErrorContains(t, err, "currency mismatch")
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(eur("399.99"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"399.99","currency":"EUR"}`, string(data))

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("399.99")))
	assert.Equal(t, "EUR", got.Currency.String())
}

func TestCartTotalSkipsUnpricedLines(t *testing.T) {
	price := eur("10.50")

	cart := Cart{
		OwnerID: "alice",
		Items: []CartItem{
			{Quantity: 2, UnitPrice: &price},
			{Quantity: 5, UnitPrice: nil}, // legacy line awaiting repair
		},
	}

	assert.Equal(t, "21.00", cart.Total().Amount.StringFixed(2))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.Equal(t, "0.00", Cart{}.Total().Amount.StringFixed(2))
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "completed", "cancelled"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseOrderStatus("shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
