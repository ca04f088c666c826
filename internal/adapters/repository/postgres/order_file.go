package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlOrderFileRepository struct {
	db SQLQuerier
}

// NewSQLOrderFileRepository creates sqlOrderFileRepository that implements port.OrderFileRepository
func NewSQLOrderFileRepository(db SQLQuerier) port.OrderFileRepository {
	return &sqlOrderFileRepository{db: db}
}

// Create creates an order file entry
func (s *sqlOrderFileRepository) Create(ctx context.Context, file domain.OrderFile) error {
	query := `INSERT INTO order_files (order_id, role, temp_key, size_bytes, content_type, checksum)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		file.OrderID,
		file.Role,
		file.TempKey,
		file.SizeBytes,
		file.ContentType,
		file.Checksum,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("order file %s/%s : %w", file.OrderID, file.Role, domain.ErrAlreadyExists)
			}
		}
		return fmt.Errorf("error inserting order file: %w", err)
	}
	return nil
}

// FindByOrderID lists all file refs of an order, ordered by role
func (s *sqlOrderFileRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderFile, error) {
	query := `SELECT order_id, role, temp_key, perm_key, size_bytes, content_type, checksum, created_at, updated_at
              FROM order_files
              WHERE order_id = $1
              ORDER BY role`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("error querying order files: %w", err)
	}
	defer rows.Close()

	var files []domain.OrderFile
	for rows.Next() {
		var row dbOrderFile
		if err := rows.Scan(
			&row.OrderID,
			&row.Role,
			&row.TempKey,
			&row.PermKey,
			&row.SizeBytes,
			&row.ContentType,
			&row.Checksum,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning order file: %w", err)
		}
		files = append(files, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order files: %w", err)
	}

	return files, nil
}

// FindByOrderIDAndRole finds a single file ref
func (s *sqlOrderFileRepository) FindByOrderIDAndRole(ctx context.Context, orderID uuid.UUID, role domain.FileRole) (*domain.OrderFile, error) {
	query := `SELECT order_id, role, temp_key, perm_key, size_bytes, content_type, checksum, created_at, updated_at
              FROM order_files
              WHERE order_id = $1 AND role = $2`

	var row dbOrderFile
	err := s.db.QueryRowContext(ctx, query, orderID, role).Scan(
		&row.OrderID,
		&row.Role,
		&row.TempKey,
		&row.PermKey,
		&row.SizeBytes,
		&row.ContentType,
		&row.Checksum,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderFileNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// SetPermanentKey writes the permanent ref of one role
func (s *sqlOrderFileRepository) SetPermanentKey(ctx context.Context, orderID uuid.UUID, role domain.FileRole, permKey string) error {
	query := `UPDATE order_files SET perm_key = $1, updated_at = now()
              WHERE order_id = $2 AND role = $3`

	result, err := s.db.ExecContext(ctx, query, permKey, orderID, role)
	if err != nil {
		return fmt.Errorf("error setting permanent key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrOrderFileNotFound
	}

	return nil
}

// dbOrderFile represents an order file row in DB
type dbOrderFile struct {
	OrderID     uuid.UUID      `db:"order_id"`
	Role        string         `db:"role"`
	TempKey     string         `db:"temp_key"`
	PermKey     sql.NullString `db:"perm_key"`
	SizeBytes   int64          `db:"size_bytes"`
	ContentType string         `db:"content_type"`
	Checksum    sql.NullString `db:"checksum"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (f *dbOrderFile) ToDomain() *domain.OrderFile {
	file := &domain.OrderFile{
		OrderID:     f.OrderID,
		Role:        domain.FileRole(f.Role),
		TempKey:     f.TempKey,
		SizeBytes:   f.SizeBytes,
		ContentType: f.ContentType,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if f.PermKey.Valid {
		file.PermKey = f.PermKey.String
	}
	if f.Checksum.Valid {
		file.Checksum = f.Checksum.String
	}
	return file
}
