package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/repository/postgres"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newPendingOrder() domain.Order {
	return domain.Order{
		ID:             uuid.New(),
		CustomerEmail:  "jane@example.com",
		Status:         domain.OrderStatusPending,
		MigrationState: domain.MigrationStateNotStarted,
	}
}

func TestSqlOrderRepository_CreateAndFind(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	t.Run("nominal", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		found, err := orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, order.ID, found.ID)
		require.Equal(t, "jane@example.com", found.CustomerEmail)
		require.Equal(t, domain.OrderStatusPending, found.Status)
		require.Equal(t, domain.MigrationStateNotStarted, found.MigrationState)
		require.Nil(t, found.MigrationCompletedAt)
		require.Nil(t, found.TempSweptAt)
		require.NotEmpty(t, found.CreatedAt)
	})

	t.Run("duplicate id", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))
		require.ErrorIs(t, orderRepo.Create(ctx, order), domain.ErrAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		truncate()
		found, err := orderRepo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrOrderNotFound)
		require.Nil(t, found)
	})
}

func TestSqlOrderRepository_UpdateStatus(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	truncate()
	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order))

	require.NoError(t, orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid))

	found, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, found.Status)
}

func TestSqlOrderRepository_TransitionMigrationState(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	t.Run("nominal - not_started to in_progress", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		won, err := orderRepo.TransitionMigrationState(ctx, order.ID,
			[]domain.MigrationState{domain.MigrationStateNotStarted, domain.MigrationStateFailed},
			domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)

		found, err := orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MigrationStateInProgress, found.MigrationState)
	})

	t.Run("second transition loses", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		expected := []domain.MigrationState{domain.MigrationStateNotStarted, domain.MigrationStateFailed}

		won, err := orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)

		// the row no longer matches the expected states
		won, err = orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.False(t, won)
	})

	t.Run("failed order can transition again", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		expected := []domain.MigrationState{domain.MigrationStateNotStarted, domain.MigrationStateFailed}

		won, err := orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)

		require.NoError(t, orderRepo.FailMigration(ctx, order.ID, "copy failed"))

		won, err = orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)
	})

	t.Run("completed order never transitions", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		expected := []domain.MigrationState{domain.MigrationStateNotStarted, domain.MigrationStateFailed}

		won, err := orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, time.Now().UTC()))

		won, err = orderRepo.TransitionMigrationState(ctx, order.ID, expected, domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.False(t, won)
	})
}

func TestSqlOrderRepository_CompleteMigration(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	t.Run("nominal", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		completedAt := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, completedAt))

		found, err := orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MigrationStateCompleted, found.MigrationState)
		require.NotNil(t, found.MigrationCompletedAt)
		require.True(t, completedAt.Equal(*found.MigrationCompletedAt))
		require.Empty(t, found.MigrationError)
	})

	t.Run("completion timestamp is stable across redeliveries", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		first := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, first))
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, first.Add(time.Hour)))

		found, err := orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, found.MigrationCompletedAt)
		require.True(t, first.Equal(*found.MigrationCompletedAt))
	})
}

func TestSqlOrderRepository_FailMigration(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	truncate()
	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order))

	require.NoError(t, orderRepo.FailMigration(ctx, order.ID, "blob not found"))

	found, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MigrationStateFailed, found.MigrationState)
	require.Equal(t, "blob not found", found.MigrationError)
}

func TestSqlOrderRepository_FindSweepCandidates(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	// rows are created with created_at = now(), so a future cutoff makes
	// them old and a past cutoff makes them recent
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	t.Run("old unswept order is a candidate", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))

		candidates, err := orderRepo.FindSweepCandidates(ctx, future)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		require.Equal(t, order.ID, candidates[0].ID)
	})

	t.Run("recent order is excluded", func(t *testing.T) {
		truncate()
		require.NoError(t, orderRepo.Create(ctx, newPendingOrder()))

		candidates, err := orderRepo.FindSweepCandidates(ctx, past)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})

	t.Run("in progress migration is excluded", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))
		won, err := orderRepo.TransitionMigrationState(ctx, order.ID,
			[]domain.MigrationState{domain.MigrationStateNotStarted},
			domain.MigrationStateInProgress)
		require.NoError(t, err)
		require.True(t, won)

		candidates, err := orderRepo.FindSweepCandidates(ctx, future)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})

	t.Run("recently completed order is excluded", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, time.Now().UTC()))

		// old enough by creation, but completion is inside the grace window
		candidates, err := orderRepo.FindSweepCandidates(ctx, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		require.Empty(t, candidates)
	})

	t.Run("completed order past the grace window is a candidate", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))
		require.NoError(t, orderRepo.CompleteMigration(ctx, order.ID, time.Now().UTC()))

		candidates, err := orderRepo.FindSweepCandidates(ctx, future)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
	})

	t.Run("swept order is excluded", func(t *testing.T) {
		truncate()
		order := newPendingOrder()
		require.NoError(t, orderRepo.Create(ctx, order))
		require.NoError(t, orderRepo.MarkTempSwept(ctx, order.ID, time.Now().UTC()))

		candidates, err := orderRepo.FindSweepCandidates(ctx, future)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})
}

func TestSqlOrderRepository_MarkTempSwept(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orderRepo := postgres.NewSQLOrderRepository(dbConnection)

	truncate()
	order := newPendingOrder()
	require.NoError(t, orderRepo.Create(ctx, order))

	sweptAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, orderRepo.MarkTempSwept(ctx, order.ID, sweptAt))

	found, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.TempSweptAt)
	require.True(t, sweptAt.Equal(*found.TempSweptAt))
}
