package webhook

import (
	"log/slog"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 webhook routes. The payment gateway
// retries on any non-2xx, so status codes double as backpressure.
type HandlerV1 struct {
	messageService port.MessageService
	logger         *slog.Logger
}

// NewWebhookHandlerV1 creates HandlerV1
func NewWebhookHandlerV1(messageService port.MessageService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		messageService: messageService,
		logger:         logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/payment", h.PaymentWebhookV1)

	return router
}
