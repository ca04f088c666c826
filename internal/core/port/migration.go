package port

import (
	"context"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// MigrationCoordinator orchestrates copying an order's files from
// temporary to permanent storage and committing the new refs to the ledger
type MigrationCoordinator interface {
	// Migrate is re-entrant: a completed order short-circuits to its
	// existing refs, a failed order is retried onto the same permanent
	// keys, and a concurrent attempt returns domain.ErrMigrationInProgress.
	Migrate(ctx context.Context, orderID uuid.UUID) (*domain.MigrationResult, error)
}

// CompletionService is the order-completion entry point invoked once a
// payment is confirmed. It is safe to invoke multiple times per order.
type CompletionService interface {
	OnPaymentConfirmed(ctx context.Context, orderID uuid.UUID) error
}

// FulfillmentNotifier signals downstream collaborators (PDF rendering,
// customer email) that an order's files are durably migrated
type FulfillmentNotifier interface {
	OrderMigrated(ctx context.Context, order domain.Order, refs map[domain.FileRole]string) error
}
