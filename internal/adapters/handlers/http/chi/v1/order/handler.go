package order

import (
	"log/slog"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 order routes
type HandlerV1 struct {
	orderService port.OrderService
	logger       *slog.Logger
}

// NewOrderHandlerV1 creates HandlerV1
func NewOrderHandlerV1(service port.OrderService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		orderService: service,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateOrderV1)
	router.Post("/{orderID}/upload", h.RequestUploadV1)
	router.Post("/{orderID}/asset", h.RegisterAssetV1)
	router.Get("/{orderID}", h.GetOrderV1)

	return router
}
