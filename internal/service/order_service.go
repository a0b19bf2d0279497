package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopcore/checkout/internal/port"
)

type OrderService struct {
	repo port.OrderRepository
	log  *slog.Logger
}

func NewOrder(repo port.OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

func (s *OrderService) ListMine(ctx context.Context, ownerID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByOwner: %w", err)
	}

	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.repo.Get(ctx, ownerID, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.Get: %w", err)
	}

	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListAll: %w", err)
	}

	return orders, nil
}

// SetStatus overwrites the status only; every other order attribute is
// immutable after checkout.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		return fmt.Errorf("repo.UpdateStatus: %w", err)
	}
	if !updated {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	s.log.Info("order status updated", "order_id", orderID, "status", parsed)

	return nil
}
