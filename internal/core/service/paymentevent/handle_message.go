package paymentevent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

func (p *paymentEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.PaymentEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal payment event: %v", err)
	}

	p.logger.Info("handling payment event", "eventID", event.EventID, "eventType", event.EventType, "orderID", event.OrderID)

	switch domain.PaymentEventType(event.EventType) {
	case domain.PaymentEventTypeConfirmed:
	case domain.PaymentEventTypeFailed:
		// Nothing to fulfil; the order stays pending until a confirmed
		// event arrives or the sweeper reclaims its temp files.
		return nil
	default:
		p.logger.Warn("skipping unknown payment event type", "eventType", event.EventType, "eventID", event.EventID)
		return nil
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return fmt.Errorf("payment event %s carries invalid order id %q: %w", event.EventID, event.OrderID, err)
	}

	return p.completion.OnPaymentConfirmed(ctx, orderID)
}
