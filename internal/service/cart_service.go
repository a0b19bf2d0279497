package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/cache"
	"github.com/shopcore/checkout/internal/domain"
	"github.com/shopcore/checkout/internal/port"
	"golang.org/x/sync/singleflight"
)

// CartService implements the selection rules: one line per product, additive
// merge on re-add, and a one-way price freeze captured on first add.
type CartService struct {
	repo     port.CartRepository
	products port.ProductStore
	cache    cache.CartCache
	log      *slog.Logger
	sfg      singleflight.Group // prevents cache stampede on hot carts
}

func NewCart(repo port.CartRepository, products port.ProductStore, cartCache cache.CartCache, log *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		cache:    cartCache,
		log:      log,
	}
}

func (s *CartService) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cart cache get failed", "err", err)
		}

		cart, err = s.repo.GetCart(ctx, ownerID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("repo.GetCart: %w", err)
		}

		if err := s.cache.Set(ctx, ownerID, cart); err != nil {
			s.log.Warn("cart cache set failed", "err", err)
		}

		return cart, nil
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return v.(domain.Cart), nil
}

// AddItem puts quantity units of a product into the cart. A new line freezes
// the product's current price; an existing line only grows its quantity and
// keeps the price captured at the first add.
func (s *CartService) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int32) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	existing, found, err := s.repo.FindItemByProduct(ctx, ownerID, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.FindItemByProduct: %w", err)
	}

	if found {
		if err := s.mergeItem(ctx, ownerID, existing, product, quantity); err != nil {
			return domain.Cart{}, err
		}
	} else {
		if quantity > product.AvailableQuantity {
			return domain.Cart{}, domain.InsufficientStockError{
				ProductID: productID,
				Available: product.AvailableQuantity,
			}
		}

		price := product.Price
		_, err := s.repo.InsertItem(ctx, ownerID, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: &price,
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("repo.InsertItem: %w", err)
		}
	}

	s.invalidate(ownerID)

	cart, err := s.repo.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.GetCart: %w", err)
	}

	return cart, nil
}

func (s *CartService) mergeItem(ctx context.Context, ownerID string, existing domain.CartItem, product domain.Product, quantity int32) error {
	newQuantity := existing.Quantity + quantity
	if newQuantity > product.AvailableQuantity {
		return domain.InsufficientStockError{
			ProductID: product.ID,
			Available: product.AvailableQuantity,
		}
	}

	updated, err := s.repo.UpdateItemQuantity(ctx, ownerID, existing.ID, newQuantity)
	if err != nil {
		return fmt.Errorf("repo.UpdateItemQuantity: %w", err)
	}
	if !updated {
		return fmt.Errorf("cart item[%s]: %w", existing.ID, domain.ErrNotFound)
	}

	// repair path for lines created before the price-freeze rule: backfill
	// from the current price, but never overwrite a frozen one
	if existing.UnitPrice == nil {
		s.log.Warn("cart line without frozen price, backfilling",
			"owner_id", ownerID, "product_id", product.ID)

		if err := s.repo.SetItemPrice(ctx, ownerID, existing.ID, product.Price); err != nil {
			return fmt.Errorf("repo.SetItemPrice: %w", err)
		}
	}

	return nil
}

// UpdateItemQuantity sets the line's quantity absolutely, re-checking stock
// but leaving the frozen price alone.
func (s *CartService) UpdateItemQuantity(ctx context.Context, ownerID string, itemID uuid.UUID, quantity int32) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	item, found, err := s.repo.FindItem(ctx, ownerID, itemID)
	if err != nil {
		return fmt.Errorf("repo.FindItem: %w", err)
	}
	if !found {
		return fmt.Errorf("cart item[%s]: %w", itemID, domain.ErrNotFound)
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("products.GetProduct: %w", err)
	}

	if quantity > product.AvailableQuantity {
		return domain.InsufficientStockError{
			ProductID: product.ID,
			Available: product.AvailableQuantity,
		}
	}

	if _, err := s.repo.UpdateItemQuantity(ctx, ownerID, itemID, quantity); err != nil {
		return fmt.Errorf("repo.UpdateItemQuantity: %w", err)
	}

	s.invalidate(ownerID)

	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID string, itemID uuid.UUID) error {
	deleted, err := s.repo.DeleteItem(ctx, ownerID, itemID)
	if err != nil {
		return fmt.Errorf("repo.DeleteItem: %w", err)
	}
	if !deleted {
		return fmt.Errorf("cart item[%s]: %w", itemID, domain.ErrNotFound)
	}

	s.invalidate(ownerID)

	return nil
}

func (s *CartService) Clear(ctx context.Context, ownerID string) error {
	if err := s.repo.Clear(ctx, ownerID); err != nil {
		return fmt.Errorf("repo.Clear: %w", err)
	}

	s.invalidate(ownerID)

	return nil
}

func (s *CartService) invalidate(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	if err := s.cache.Delete(ctx, ownerID); err != nil {
		s.log.Warn("cart cache invalidate failed", "err", err)
	}
}
