package completion

import (
	"context"
	"log/slog"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
)

type completionService struct {
	uow         port.UnitOfWork
	coordinator port.MigrationCoordinator
	notifier    port.FulfillmentNotifier
	logger      *slog.Logger
}

// NewCompletionService creates the order-completion workflow
func NewCompletionService(uow port.UnitOfWork, coordinator port.MigrationCoordinator, notifier port.FulfillmentNotifier, logger *slog.Logger) port.CompletionService {
	return &completionService{
		uow:         uow,
		coordinator: coordinator,
		notifier:    notifier,
		logger:      logger,
	}
}

// OnPaymentConfirmed drives an order from payment confirmation to
// fulfillment. The payment gateway delivers at least once, so every step
// tolerates re-invocation: marking paid is conditional, the coordinator
// short-circuits completed migrations, and a fulfilled order is not
// re-notified.
func (s *completionService) OnPaymentConfirmed(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.uow.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == domain.OrderStatusPending {
		if err := s.uow.OrderRepo().UpdateStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
			return err
		}
		order.Status = domain.OrderStatusPaid
	}

	// Re-entrant: a completed order returns its committed refs without
	// touching the store; a failed order is retried onto the same keys;
	// a concurrent attempt surfaces ErrMigrationInProgress so the caller
	// redelivers later. No fulfillment step runs before this succeeds.
	result, err := s.coordinator.Migrate(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == domain.OrderStatusFulfilled {
		return nil
	}

	if err := s.notifier.OrderMigrated(ctx, *order, result.PermanentRefs); err != nil {
		return err
	}

	if err := s.uow.OrderRepo().UpdateStatus(ctx, orderID, domain.OrderStatusFulfilled); err != nil {
		return err
	}

	s.logger.Info("order fulfilled",
		slog.String("order_id", orderID.String()))

	return nil
}
