package port

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// OrderRepository is an interface to define order ledger interactions
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error

	// TransitionMigrationState performs a single conditional update of the
	// migration state. It returns true only when the row was in one of the
	// expected states and this caller won the transition.
	TransitionMigrationState(ctx context.Context, id uuid.UUID, expected []domain.MigrationState, next domain.MigrationState) (bool, error)

	// CompleteMigration is the commit point: sets state to completed,
	// records the completion time and clears the last failure reason.
	CompleteMigration(ctx context.Context, id uuid.UUID, completedAt time.Time) error

	// FailMigration records the failure reason and moves the state to failed.
	FailMigration(ctx context.Context, id uuid.UUID, reason string) error

	// FindSweepCandidates lists orders whose temporary blobs are eligible
	// for deletion: created before cutoff, not currently migrating, not
	// completed within the grace period, and not already swept.
	FindSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.Order, error)

	// MarkTempSwept records that the order's temporary blobs were deleted.
	MarkTempSwept(ctx context.Context, id uuid.UUID, sweptAt time.Time) error
}

// OrderFileRepository is an interface to define order file interactions
type OrderFileRepository interface {
	Create(ctx context.Context, file domain.OrderFile) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderFile, error)
	FindByOrderIDAndRole(ctx context.Context, orderID uuid.UUID, role domain.FileRole) (*domain.OrderFile, error)
	SetPermanentKey(ctx context.Context, orderID uuid.UUID, role domain.FileRole, permKey string) error
}
