package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/domain"
)

type OrderRepository interface {
	// Create persists an order with its lines; used only inside the checkout
	// transaction.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)

	ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error)

	// Get is owner-scoped: an order belonging to someone else is reported the
	// same way as a nonexistent one.
	Get(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error)

	ListAll(ctx context.Context) ([]domain.Order, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (bool, error)
}

type CheckoutRepository interface {
	// PlaceOrder converts the owner's cart into an order in one transaction:
	// stock validation, stock decrement, order creation and cart clearing all
	// commit or roll back together.
	PlaceOrder(ctx context.Context, ownerID string) (domain.Order, error)
}
