package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopcore/checkout/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`

	// set only for insufficient-stock errors
	ProductID string `json:"product_id,omitempty"`
	Available *int32 `json:"available,omitempty"`
}

type cartItemResponse struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int32         `json:"quantity"`
	UnitPrice   *domain.Money `json:"unit_price,omitempty"`
}

type cartResponse struct {
	OwnerID string             `json:"owner_id"`
	Items   []cartItemResponse `json:"items"`
	Total   string             `json:"total"`
}

type orderItemResponse struct {
	ProductID       string       `json:"product_id"`
	ProductName     string       `json:"product_name"`
	Quantity        int32        `json:"quantity"`
	PriceAtPurchase domain.Money `json:"price_at_purchase"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"owner_id"`
	Items     []orderItemResponse `json:"items"`
	Total     domain.Money        `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return cartResponse{
		OwnerID: cart.OwnerID,
		Items:   items,
		Total:   cart.Total().Amount.StringFixed(2),
	}
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:       item.ProductID.String(),
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Price,
		})
	}

	return orderResponse{
		ID:        order.ID.String(),
		OwnerID:   order.OwnerID,
		Items:     items,
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

// writeError maps domain errors to status codes; anything unmapped is an
// opaque 500 without internal detail.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var stockErr domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		available := stockErr.Available
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     stockErr.Error(),
			ProductID: stockErr.ProductID.String(),
			Available: &available,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: domain.ErrEmptyCart.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflicting update, retry"})
	default:
		h.log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "operation failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
