package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopcore/checkout/internal/port"
)

type productRepository struct {
	db querier
}

func NewProduct(pool *pgxpool.Pool) port.ProductStore {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductStore {
	return &productRepository{db: tx}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var (
		product      domain.Product
		amount, code string
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, name, price_amount::text, price_currency, available_quantity, created_at, updated_at
		FROM products
		WHERE id = $1`, productID).
		Scan(&product.ID, &product.Name, &amount, &code,
			&product.AvailableQuantity, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("db.QueryRow: %w", err)
	}

	product.Price, err = parseMoney(amount, code)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parseMoney: %w", err)
	}

	return product, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	// conditional decrement: availability can never go negative, a lost
	// update surfaces as zero affected rows
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET available_quantity = available_quantity - $2, updated_at = now()
		WHERE id = $1 AND available_quantity >= $2`, productID, quantity)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrConflict)
	}

	return nil
}
