package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../../migrations/000001_products.up.sql",
			"../../migrations/000002_carts.up.sql",
			"../../migrations/000003_orders.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, price string, available int32) (uuid.UUID, error) {
	var id uuid.UUID

	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, price_amount, price_currency, available_quantity)
		VALUES ($1, $2::numeric, 'EUR', $3)
		RETURNING id`, gofakeit.ProductName(), price, available).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

func productAvailability(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (int32, error) {
	var available int32

	err := pool.QueryRow(ctx, `SELECT available_quantity FROM products WHERE id = $1`, id).Scan(&available)
	if err != nil {
		return 0, fmt.Errorf("select availability: %w", err)
	}

	return available, nil
}

func setProductPrice(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, price string) error {
	_, err := pool.Exec(ctx, `UPDATE products SET price_amount = $2::numeric WHERE id = $1`, id, price)
	return err
}

func eur(amount string) domain.Money {
	return domain.Money{
		Amount:   decimal.RequireFromString(amount),
		Currency: currency.EUR,
	}
}

func moneyComparers() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
	}
}

func assertMoney(t *testing.T, expected, actual domain.Money) {
	t.Helper()

	diff := cmp.Diff(expected, actual, moneyComparers())
	assert.Empty(t, diff)
}
