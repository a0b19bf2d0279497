package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/domain"
)

type ProductStore interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	// DecrementStock subtracts quantity from availability only when enough is
	// left, so concurrent decrements cannot drive availability negative.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error
}
