package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the purchase lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

// MigrationState represents the temp-to-permanent storage migration lifecycle
type MigrationState string

const (
	MigrationStateNotStarted MigrationState = "not_started"
	MigrationStateInProgress MigrationState = "in_progress"
	MigrationStateCompleted  MigrationState = "completed"
	MigrationStateFailed     MigrationState = "failed"
)

// FileRole is a named slot for a file belonging to an order.
// Roles are a closed set; new roles are added deliberately so they
// get migrated by the same machinery.
type FileRole string

const (
	FileRoleAudio    FileRole = "audio"
	FileRolePDF      FileRole = "pdf"
	FileRolePhoto    FileRole = "photo"
	FileRoleWaveform FileRole = "waveform"
)

// ParseFileRole validates a raw role string against the closed set
func ParseFileRole(raw string) (FileRole, error) {
	switch FileRole(raw) {
	case FileRoleAudio, FileRolePDF, FileRolePhoto, FileRoleWaveform:
		return FileRole(raw), nil
	}
	return "", ErrInvalidFileRole
}

// Order represents one purchase
type Order struct {
	ID                   uuid.UUID
	CustomerEmail        string
	Status               OrderStatus
	MigrationState       MigrationState
	MigrationError       string
	MigrationCompletedAt *time.Time
	TempSweptAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderFile binds a file role of an order to its storage keys.
// TempKey is set once at upload time and never changes; PermKey is
// written only by the migration coordinator.
type OrderFile struct {
	OrderID     uuid.UUID
	Role        FileRole
	TempKey     string
	PermKey     string
	SizeBytes   int64
	ContentType string
	Checksum    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MigrationResult carries the permanent refs of a successful migration
type MigrationResult struct {
	PermanentRefs map[FileRole]string
}

// SortFilesByRole orders files lexicographically by role so migration
// attempts walk roles in a deterministic order
func SortFilesByRole(files []OrderFile) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Role < files[j].Role
	})
}
