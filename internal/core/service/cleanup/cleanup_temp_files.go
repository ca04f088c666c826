package cleanup

import (
	"context"
	"time"
)

// CleanupExpiredTempFiles deletes temporary blobs older than the grace
// period. The candidate query already excludes orders that are migrating
// right now and orders completed within the grace period, so the sweeper
// can never race a concurrent migration attempt or strand a fresh
// completion. Permanent blobs are never touched.
func (c *cleanupService) CleanupExpiredTempFiles(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-c.cfg.SweepGracePeriod)

	orders, err := c.uow.OrderRepo().FindSweepCandidates(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, candidate := range orders {
		files, findErr := c.uow.OrderFileRepo().FindByOrderID(ctx, candidate.ID)
		if findErr != nil {
			c.logger.Error("failed to list files for sweep", "order_id", candidate.ID, "err", findErr)
			continue
		}

		swept := true
		for _, file := range files {
			if deleteErr := c.storage.DeleteTemporary(ctx, file.TempKey); deleteErr != nil {
				c.logger.Error("failed to delete temporary blob", "temp_key", file.TempKey, "err", deleteErr)
				swept = false
			}
		}

		if !swept {
			continue
		}

		if markErr := c.uow.OrderRepo().MarkTempSwept(ctx, candidate.ID, now); markErr != nil {
			c.logger.Error("failed to mark order swept", "order_id", candidate.ID, "err", markErr)
		}
	}

	c.logger.Info("temp file sweep completed", "candidates", len(orders))
	return nil
}
