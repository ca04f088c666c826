package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// V1CreateOrderRequest is the request to open a new order
type V1CreateOrderRequest struct {
	CustomerEmail string `json:"customer_email"`
}

// V1CreateOrderResponse is the response to open a new order
type V1CreateOrderResponse struct {
	OrderID   uuid.UUID `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *HandlerV1) CreateOrderV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateOrderRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create order request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.CustomerEmail == "" {
		http.Error(w, "customer_email is required", http.StatusBadRequest)
		return
	}

	createdOrder, createErr := h.orderService.CreateOrder(r.Context(), req.CustomerEmail)
	switch {
	case errors.Is(createErr, domain.ErrInvalidEmail):
		http.Error(w, createErr.Error(), http.StatusBadRequest)
		return
	case createErr != nil:
		h.logger.Error("error creating order", "error", createErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CreateOrderResponse{
			OrderID:   createdOrder.ID,
			Status:    string(createdOrder.Status),
			CreatedAt: createdOrder.CreatedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
