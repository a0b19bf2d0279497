package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32

	// UnitPrice is frozen when the product first enters the cart and is never
	// re-read from the catalog afterward. Nil marks rows created before the
	// freeze rule existed; they are repaired on the next add.
	UnitPrice *Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total sums unit price times quantity over priced lines.
func (c Cart) Total() Money {
	var (
		total Money
		first = true
	)

	for _, item := range c.Items {
		if item.UnitPrice == nil {
			continue
		}

		line := item.UnitPrice.Mul(item.Quantity)
		if first {
			total = line
			first = false
			continue
		}

		sum, err := total.Add(line)
		if err != nil {
			// mixed currencies in one cart, keep the running total as is
			continue
		}
		total = sum
	}

	return total
}
