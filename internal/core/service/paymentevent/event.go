package paymentevent

import (
	"log/slog"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
)

type paymentEventService struct {
	completion port.CompletionService
	logger     *slog.Logger
}

// NewPaymentEventService creates a handler for payment gateway events
func NewPaymentEventService(completion port.CompletionService, logger *slog.Logger) port.MessageService {
	return &paymentEventService{
		completion: completion,
		logger:     logger,
	}
}
