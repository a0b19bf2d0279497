package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopcore/checkout/internal/cache"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopcore/checkout/internal/port"
)

const invalidateTimeout = time.Second

// CheckoutService turns a cart into an order. Not idempotent: every call that
// finds a non-empty cart creates a new order, so callers must not blindly
// retry on an ambiguous failure.
type CheckoutService struct {
	checkout port.CheckoutRepository
	cache    cache.CartCache
	log      *slog.Logger
}

func NewCheckout(checkout port.CheckoutRepository, cartCache cache.CartCache, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		checkout: checkout,
		cache:    cartCache,
		log:      log,
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, ownerID string) (domain.Order, error) {
	order, err := s.checkout.PlaceOrder(ctx, ownerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("checkout.PlaceOrder: %w", err)
	}

	s.log.Info("order placed",
		"owner_id", ownerID, "order_id", order.ID, "total", order.Total.String())

	// the cart is empty now, drop the stale cached copy
	invCtx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()
	if err := s.cache.Delete(invCtx, ownerID); err != nil {
		s.log.Warn("cart cache invalidate failed", "err", err)
	}

	return order, nil
}
