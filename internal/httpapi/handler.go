package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/domain"
)

type cartService interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int32) (domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, ownerID string, itemID uuid.UUID, quantity int32) error
	RemoveItem(ctx context.Context, ownerID string, itemID uuid.UUID) error
	Clear(ctx context.Context, ownerID string) error
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, ownerID string) (domain.Order, error)
}

type orderService interface {
	ListMine(ctx context.Context, ownerID string) ([]domain.Order, error)
	Get(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type Handler struct {
	log      *slog.Logger
	carts    cartService
	checkout checkoutService
	orders   orderService
}

func NewHandler(log *slog.Logger, carts cartService, checkout checkoutService, orders orderService) *Handler {
	return &Handler{
		log:      log,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(authenticate)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addItem)
		r.Put("/items/{itemID}", h.updateItem)
		r.Delete("/items/{itemID}", h.removeItem)
	})

	r.Post("/checkout", h.placeOrder)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Get("/{orderID}", h.getOrder)
	})

	r.Route("/admin/orders", func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", h.listAllOrders)
		r.Put("/{orderID}/status", h.setOrderStatus)
	})

	return r
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), userID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	cart, err := h.carts.AddItem(r.Context(), userID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	if err := h.carts.UpdateItemQuantity(r.Context(), userID(r.Context()), itemID, req.Quantity); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userID(r.Context()), itemID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), userID(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.PlaceOrder(r.Context(), userID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListMine(r.Context(), userID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.orders.Get(r.Context(), userID(r.Context()), orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	if err := h.orders.SetStatus(r.Context(), orderID, req.Status); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
