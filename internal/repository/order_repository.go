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

type orderRepository struct {
	db querier
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OwnerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order has no items")
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (owner_id, total_amount, total_currency, status)
		VALUES ($1, $2::numeric, $3, $4)
		RETURNING id, created_at`,
		order.OwnerID, order.Total.Amount.StringFixed(2),
		order.Total.Currency.String(), string(order.Status)).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("db.QueryRow: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, quantity, price_amount, price_currency)
			VALUES ($1, $2, $3, $4::numeric, $5)`,
			order.ID, item.ProductID, item.Quantity,
			item.Price.Amount.StringFixed(2), item.Price.Currency.String())
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, fmt.Errorf("db.SendBatch: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return r.list(ctx, `WHERE o.owner_id = $1`, ownerID)
}

func (r *orderRepository) Get(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	orders, err := r.list(ctx, `WHERE o.owner_id = $1 AND o.id = $2`, ownerID, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	// a foreign order and a missing order are indistinguishable to the caller
	if len(orders) == 0 {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return orders[0], nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, "")
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (bool, error) {
	// only the status column; totals and lines stay immutable
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1`, orderID, string(status))
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) list(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.owner_id, o.total_amount::text, o.total_currency, o.status, o.created_at,
		       oi.product_id, p.name, oi.quantity, oi.price_amount::text, oi.price_currency
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		`+where+`
		ORDER BY o.created_at DESC, o.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var (
		orders  []domain.Order
		current *domain.Order
	)

	for rows.Next() {
		var (
			order                  domain.Order
			status                 string
			totalAmount, totalCode string
			item                   domain.OrderItem
			priceAmount, priceCode string
		)

		err := rows.Scan(&order.ID, &order.OwnerID, &totalAmount, &totalCode, &status, &order.CreatedAt,
			&item.ProductID, &item.ProductName, &item.Quantity, &priceAmount, &priceCode)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		if current == nil || current.ID != order.ID {
			order.Status = domain.OrderStatus(status)
			order.Total, err = parseMoney(totalAmount, totalCode)
			if err != nil {
				return nil, fmt.Errorf("parseMoney: %w", err)
			}

			orders = append(orders, order)
			current = &orders[len(orders)-1]
		}

		item.Price, err = parseMoney(priceAmount, priceCode)
		if err != nil {
			return nil, fmt.Errorf("parseMoney: %w", err)
		}

		current.Items = append(current.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return orders, nil
}
