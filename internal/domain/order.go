package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates an externally supplied status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("status[%s]: %w", s, ErrInvalidStatus)
	}
}

// Order is immutable after creation except for Status.
type Order struct {
	ID      uuid.UUID
	OwnerID string
	Items   []OrderItem
	Total   Money
	Status  OrderStatus

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32

	// Price is the unit price at purchase time, copied from the cart line's
	// frozen price, never recomputed from the product.
	Price Money
}
