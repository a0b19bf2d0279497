package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidStatus   = errors.New("unknown order status")

	// ErrConflict signals a transactional serialization failure; the caller
	// may retry, unlike with InsufficientStockError.
	ErrConflict = errors.New("concurrent update conflict")
)

// InsufficientStockError reports how many units are actually available so the
// caller can act on it.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int32
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}
