package migration

import (
	"context"
	"log/slog"
)

// rollback deletes the permanent blobs created during a failed attempt.
// Deletion errors are logged, never propagated: this runs inside an
// already-failing path and raising would mask the original failure. An
// orphaned permanent blob is an acceptable degraded outcome. Temporary
// source blobs are never touched. The deletes run on a detached context:
// a cancelled attempt (the usual reason this path runs) must not also
// strand the blobs it created.
func (c *coordinator) rollback(ctx context.Context, permKeys []string) {
	ctx, cancel := detach(ctx)
	defer cancel()
	for _, key := range permKeys {
		if err := c.storage.DeletePermanent(ctx, key); err != nil {
			c.logger.Error("rollback delete failed",
				slog.String("perm_key", key),
				slog.Any("error", err))
		}
	}
}
