package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
)

type coordinator struct {
	uow     port.UnitOfWork
	storage port.BlobStorage
	cfg     config.MigrationConfig
	logger  *slog.Logger
}

// NewCoordinator creates the migration coordinator. It is stateless: all
// coordination between concurrent callers goes through the ledger's
// conditional state, so instances can run in any number of processes.
func NewCoordinator(uow port.UnitOfWork, storage port.BlobStorage, cfg config.MigrationConfig, logger *slog.Logger) port.MigrationCoordinator {
	return &coordinator{
		uow:     uow,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// Migrate copies every file backing the order from temporary to permanent
// storage, verifies each copy, and commits the permanent refs to the ledger
// in a single transaction. Until that commit the order is not migrated,
// whatever blobs were physically copied.
func (c *coordinator) Migrate(ctx context.Context, orderID uuid.UUID) (*domain.MigrationResult, error) {
	order, err := c.uow.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	files, err := c.uow.OrderFileRepo().FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.MigrationState {
	case domain.MigrationStateCompleted:
		// Terminal: return the committed refs without touching the store.
		refs := make(map[domain.FileRole]string, len(files))
		for _, file := range files {
			if file.PermKey != "" {
				refs[file.Role] = file.PermKey
			}
		}
		return &domain.MigrationResult{PermanentRefs: refs}, nil
	case domain.MigrationStateInProgress:
		return nil, domain.ErrMigrationInProgress
	}

	if len(files) == 0 {
		return nil, domain.ErrNoTemporaryFiles
	}

	// Write-ahead marker. The conditional update is the exclusive
	// transition guard: only one of two concurrent callers wins, the
	// loser is told to retry later.
	won, err := c.uow.OrderRepo().TransitionMigrationState(
		ctx,
		orderID,
		[]domain.MigrationState{domain.MigrationStateNotStarted, domain.MigrationStateFailed},
		domain.MigrationStateInProgress,
	)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, domain.ErrMigrationInProgress
	}

	domain.SortFilesByRole(files)

	refs := make(map[domain.FileRole]string, len(files))
	created := make([]string, 0, len(files))
	for _, file := range files {
		permKey := PermanentKey(orderID, file.Role, file.TempKey)
		if copyErr := c.copyAndVerify(ctx, file, permKey); copyErr != nil {
			c.rollback(ctx, created)
			return nil, c.fail(ctx, orderID, fmt.Errorf("role %s: %w", file.Role, copyErr))
		}
		created = append(created, permKey)
		refs[file.Role] = permKey
	}

	commitErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		for _, file := range files {
			if err := uow.OrderFileRepo().SetPermanentKey(ctx, orderID, file.Role, refs[file.Role]); err != nil {
				return err
			}
		}
		return uow.OrderRepo().CompleteMigration(ctx, orderID, time.Now().UTC())
	})
	if commitErr != nil {
		// The permanent blobs are valid, only unreferenced. They stay in
		// place so the next attempt re-copies onto the same keys and
		// re-attempts the commit instead of deleting good data.
		return nil, c.fail(ctx, orderID, fmt.Errorf("ledger commit: %w", commitErr))
	}

	c.logger.Info("migration completed",
		slog.String("order_id", orderID.String()),
		slog.Int("files", len(refs)))

	return &domain.MigrationResult{PermanentRefs: refs}, nil
}

// failRecordTimeout bounds the writes that run after an attempt has
// already failed: recording the failure and deleting half-copied blobs.
const failRecordTimeout = 10 * time.Second

// detach severs ctx from cancellation. The attempt's context is often
// already dead when a failure is recorded (request timeout, shutdown);
// the FailMigration write must still land or the order stays
// in_progress and no later attempt can claim it.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), failRecordTimeout)
}

func (c *coordinator) fail(ctx context.Context, orderID uuid.UUID, cause error) error {
	ctx, cancel := detach(ctx)
	defer cancel()
	if err := c.uow.OrderRepo().FailMigration(ctx, orderID, cause.Error()); err != nil {
		c.logger.Error("failed to record migration failure",
			slog.String("order_id", orderID.String()),
			slog.Any("error", err))
	}
	return cause
}
