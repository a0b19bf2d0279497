package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/domain"
)

type CartRepository interface {
	// GetCart returns the owner's cart, creating an empty one on first access.
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)

	FindItem(ctx context.Context, ownerID string, itemID uuid.UUID) (domain.CartItem, bool, error)
	FindItemByProduct(ctx context.Context, ownerID string, productID uuid.UUID) (domain.CartItem, bool, error)

	InsertItem(ctx context.Context, ownerID string, item domain.CartItem) (domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, ownerID string, itemID uuid.UUID, quantity int32) (bool, error)

	// SetItemPrice backfills a frozen price onto a line that has none.
	// It never overwrites an existing price.
	SetItemPrice(ctx context.Context, ownerID string, itemID uuid.UUID, price domain.Money) error

	DeleteItem(ctx context.Context, ownerID string, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, ownerID string) error
}
