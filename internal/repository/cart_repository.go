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

type cartRepository struct {
	db querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{db: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{db: tx}
}

const cartItemColumns = `ci.id, ci.product_id, p.name, ci.quantity,
		ci.price_amount::text, ci.price_currency, ci.created_at, ci.updated_at`

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	if err := r.ensureCart(ctx, ownerID); err != nil {
		return domain.Cart{}, fmt.Errorf("ensureCart: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id = $1
		ORDER BY ci.created_at`, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("rows.Err: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *cartRepository) FindItem(ctx context.Context, ownerID string, itemID uuid.UUID) (domain.CartItem, bool, error) {
	if ownerID == "" {
		return domain.CartItem{}, false, fmt.Errorf("ownerID is empty")
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id = $1 AND ci.id = $2`, ownerID, itemID)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) FindItemByProduct(ctx context.Context, ownerID string, productID uuid.UUID) (domain.CartItem, bool, error) {
	if ownerID == "" {
		return domain.CartItem{}, false, fmt.Errorf("ownerID is empty")
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id = $1 AND ci.product_id = $2`, ownerID, productID)

	item, err := scanCartItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("scanCartItem: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) InsertItem(ctx context.Context, ownerID string, item domain.CartItem) (domain.CartItem, error) {
	if ownerID == "" {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}
	if item.UnitPrice == nil {
		return domain.CartItem{}, fmt.Errorf("unit price is not set")
	}

	if err := r.ensureCart(ctx, ownerID); err != nil {
		return domain.CartItem{}, fmt.Errorf("ensureCart: %w", err)
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (owner_id, product_id, quantity, price_amount, price_currency)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING id, created_at, updated_at`,
		ownerID, item.ProductID, item.Quantity,
		item.UnitPrice.Amount.StringFixed(2), item.UnitPrice.Currency.String()).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("db.QueryRow: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, ownerID string, itemID uuid.UUID, quantity int32) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	// price columns deliberately untouched: the frozen price never changes here
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $3, updated_at = now()
		WHERE owner_id = $1 AND id = $2`, ownerID, itemID, quantity)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) SetItemPrice(ctx context.Context, ownerID string, itemID uuid.UUID, price domain.Money) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	// the guard keeps an already frozen price from being overwritten
	_, err := r.db.Exec(ctx, `
		UPDATE cart_items
		SET price_amount = $3::numeric, price_currency = $4, updated_at = now()
		WHERE owner_id = $1 AND id = $2 AND price_amount IS NULL`,
		ownerID, itemID, price.Amount.StringFixed(2), price.Currency.String())
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, itemID uuid.UUID) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE owner_id = $1 AND id = $2`, ownerID, itemID)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	// the cart row itself stays; only its lines go
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

// ensureCart is the idempotent get-or-create guarded by the carts primary key.
func (r *cartRepository) ensureCart(ctx context.Context, ownerID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (owner_id) VALUES ($1)
		ON CONFLICT (owner_id) DO NOTHING`, ownerID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var (
		item         domain.CartItem
		amount, code *string
	)

	err := row.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity,
		&amount, &code, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.CartItem{}, err
	}

	item.UnitPrice, err = parseNullableMoney(amount, code)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("parseNullableMoney: %w", err)
	}

	return item, nil
}
