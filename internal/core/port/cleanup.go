package port

import (
	"context"
	"time"
)

// CleanupService is service that handles retention cleanup of temporary blobs
type CleanupService interface {
	CleanupExpiredTempFiles(ctx context.Context, now time.Time) error
}
