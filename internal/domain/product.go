package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog read model. The catalog service owns the product
// lifecycle; this module only reads prices and decrements availability.
type Product struct {
	ID                uuid.UUID
	Name              string
	Price             Money
	AvailableQuantity int32

	CreatedAt time.Time
	UpdatedAt time.Time
}
