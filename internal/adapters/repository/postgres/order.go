package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlOrderRepository struct {
	db SQLQuerier
}

// NewSQLOrderRepository creates sqlOrderRepository that implements port.OrderRepository
func NewSQLOrderRepository(db SQLQuerier) port.OrderRepository {
	return &sqlOrderRepository{db: db}
}

// Create creates a new order
func (s *sqlOrderRepository) Create(ctx context.Context, order domain.Order) error {
	query := `INSERT INTO orders (id, customer_email, status, migration_state)
              VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, order.ID, order.CustomerEmail, order.Status, order.MigrationState)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("order %s : %w", order.ID, domain.ErrAlreadyExists)
			}
		}
		return fmt.Errorf("error inserting order: %w", err)
	}
	return nil
}

// FindByID finds an order by id
func (s *sqlOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, customer_email, status, migration_state, migration_error,
                     migration_completed_at, temp_swept_at, created_at, updated_at
              FROM orders
              WHERE id = $1`

	var row dbOrder
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.CustomerEmail,
		&row.Status,
		&row.MigrationState,
		&row.MigrationError,
		&row.MigrationCompletedAt,
		&row.TempSweptAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// UpdateStatus updates the purchase status
func (s *sqlOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// TransitionMigrationState performs the exclusive transition guard: one
// conditional UPDATE whose rows-affected count decides the winner.
func (s *sqlOrderRepository) TransitionMigrationState(ctx context.Context, id uuid.UUID, expected []domain.MigrationState, next domain.MigrationState) (bool, error) {
	placeholders := make([]string, len(expected))
	args := make([]interface{}, 0, len(expected)+2)
	args = append(args, next, id)
	for i, state := range expected {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, state)
	}

	query := fmt.Sprintf(
		`UPDATE orders SET migration_state = $1, updated_at = now()
         WHERE id = $2 AND migration_state IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("error transitioning migration state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}

	return rows == 1, nil
}

// CompleteMigration is the single commit point of a migration attempt.
// migration_completed_at is only written on the first completion.
func (s *sqlOrderRepository) CompleteMigration(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	query := `UPDATE orders
              SET migration_state = $1,
                  migration_error = NULL,
                  migration_completed_at = COALESCE(migration_completed_at, $2),
                  updated_at = now()
              WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, domain.MigrationStateCompleted, completedAt, id)
	if err != nil {
		return fmt.Errorf("error completing migration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// FailMigration records the failure reason and sets the state to failed
func (s *sqlOrderRepository) FailMigration(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE orders
              SET migration_state = $1, migration_error = $2, updated_at = now()
              WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, domain.MigrationStateFailed, reason, id)
	if err != nil {
		return fmt.Errorf("error failing migration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// FindSweepCandidates lists orders whose temporary blobs may be deleted.
// Orders currently migrating are excluded so the sweeper never races a
// concurrent migration attempt; completed orders stay excluded until the
// grace period after completion has passed.
func (s *sqlOrderRepository) FindSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, customer_email, status, migration_state, migration_error,
		       migration_completed_at, temp_swept_at, created_at, updated_at
		FROM orders
		WHERE temp_swept_at IS NULL
		  AND created_at < $1
		  AND migration_state <> 'in_progress'
		  AND (migration_completed_at IS NULL OR migration_completed_at < $1)`

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying sweep candidates: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var row dbOrder
		if err := rows.Scan(
			&row.ID,
			&row.CustomerEmail,
			&row.Status,
			&row.MigrationState,
			&row.MigrationError,
			&row.MigrationCompletedAt,
			&row.TempSweptAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// MarkTempSwept records when the sweeper removed the temporary blobs
func (s *sqlOrderRepository) MarkTempSwept(ctx context.Context, id uuid.UUID, sweptAt time.Time) error {
	query := `UPDATE orders SET temp_swept_at = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, sweptAt, id)
	if err != nil {
		return fmt.Errorf("error marking order swept: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// dbOrder represents an order row in DB
type dbOrder struct {
	ID                   uuid.UUID      `db:"id"`
	CustomerEmail        string         `db:"customer_email"`
	Status               string         `db:"status"`
	MigrationState       string         `db:"migration_state"`
	MigrationError       sql.NullString `db:"migration_error"`
	MigrationCompletedAt sql.NullTime   `db:"migration_completed_at"`
	TempSweptAt          sql.NullTime   `db:"temp_swept_at"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (o *dbOrder) ToDomain() *domain.Order {
	order := &domain.Order{
		ID:             o.ID,
		CustomerEmail:  o.CustomerEmail,
		Status:         domain.OrderStatus(o.Status),
		MigrationState: domain.MigrationState(o.MigrationState),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.MigrationError.Valid {
		order.MigrationError = o.MigrationError.String
	}
	if o.MigrationCompletedAt.Valid {
		order.MigrationCompletedAt = &o.MigrationCompletedAt.Time
	}
	if o.TempSweptAt.Valid {
		order.TempSweptAt = &o.TempSweptAt.Time
	}
	return order
}
