package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopcore/checkout/internal/port"
)

type checkoutRepository struct {
	pool *pgxpool.Pool
}

func NewCheckout(pool *pgxpool.Pool) port.CheckoutRepository {
	return &checkoutRepository{pool: pool}
}

// checkoutLine is a cart line joined with the availability of its product,
// read under a row lock.
type checkoutLine struct {
	productID   uuid.UUID
	productName string
	quantity    int32
	unitPrice   *domain.Money
	available   int32
}

// PlaceOrder runs the whole checkout as one transaction. The SELECT locks the
// involved product rows, so a concurrent checkout against the same products
// blocks until this one commits or rolls back and then sees its effect.
func (r *checkoutRepository) PlaceOrder(ctx context.Context, ownerID string) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Order, error) {
		lines, err := lockCartLines(ctx, tx, ownerID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("lockCartLines: %w", err)
		}

		if len(lines) == 0 {
			return domain.Order{}, domain.ErrEmptyCart
		}

		order := domain.Order{
			OwnerID: ownerID,
			Status:  domain.StatusPending,
		}

		for _, line := range lines {
			if line.quantity > line.available {
				return domain.Order{}, domain.InsufficientStockError{
					ProductID: line.productID,
					Available: line.available,
				}
			}
			if line.unitPrice == nil {
				return domain.Order{}, fmt.Errorf("cart line for product[%s] has no frozen price", line.productID)
			}

			order.Items = append(order.Items, domain.OrderItem{
				ProductID:   line.productID,
				ProductName: line.productName,
				Quantity:    line.quantity,
				Price:       *line.unitPrice,
			})
		}

		total, err := orderTotal(order.Items)
		if err != nil {
			return domain.Order{}, fmt.Errorf("orderTotal: %w", err)
		}
		order.Total = total.Round2()

		products := NewProductWithTx(tx)
		for _, line := range lines {
			if err := products.DecrementStock(ctx, line.productID, line.quantity); err != nil {
				return domain.Order{}, fmt.Errorf("products.DecrementStock: %w", err)
			}
		}

		order, err = NewOrderWithTx(tx).Create(ctx, order)
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders.Create: %w", err)
		}

		if err := NewCartWithTx(tx).Clear(ctx, ownerID); err != nil {
			return domain.Order{}, fmt.Errorf("cart.Clear: %w", err)
		}

		return order, nil
	})
}

func lockCartLines(ctx context.Context, tx pgx.Tx, ownerID string) ([]checkoutLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, p.name, ci.quantity,
		       ci.price_amount::text, ci.price_currency, p.available_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id = $1
		ORDER BY ci.product_id
		FOR UPDATE OF p`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("tx.Query: %w", err)
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var (
			line         checkoutLine
			amount, code *string
		)

		err := rows.Scan(&line.productID, &line.productName, &line.quantity,
			&amount, &code, &line.available)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		line.unitPrice, err = parseNullableMoney(amount, code)
		if err != nil {
			return nil, fmt.Errorf("parseNullableMoney: %w", err)
		}

		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

func orderTotal(items []domain.OrderItem) (domain.Money, error) {
	total := items[0].Price.Mul(items[0].Quantity)

	for _, item := range items[1:] {
		sum, err := total.Add(item.Price.Mul(item.Quantity))
		if err != nil {
			return domain.Money{}, err
		}
		total = sum
	}

	return total, nil
}
