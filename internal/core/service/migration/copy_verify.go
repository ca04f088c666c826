package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
)

// copyAndVerify copies one role's temporary blob to its permanent key and
// re-reads the destination to verify existence and byte size against the
// source. A mismatch is a hard failure for the attempt, not a silent
// partial success.
func (c *coordinator) copyAndVerify(ctx context.Context, file domain.OrderFile, permKey string) error {
	var src *port.ObjectInfo
	err := c.withRetry(ctx, func(ctx context.Context) error {
		var statErr error
		src, statErr = c.storage.StatTemporary(ctx, file.TempKey)
		return statErr
	})
	if err != nil {
		return fmt.Errorf("stat source %s: %w", file.TempKey, err)
	}

	err = c.withRetry(ctx, func(ctx context.Context) error {
		return c.storage.CopyToPermanent(ctx, file.TempKey, permKey)
	})
	if err != nil {
		return fmt.Errorf("copy %s -> %s: %w", file.TempKey, permKey, err)
	}

	var dst *port.ObjectInfo
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var statErr error
		dst, statErr = c.storage.StatPermanent(ctx, permKey)
		return statErr
	})
	if err != nil {
		return fmt.Errorf("stat destination %s: %w", permKey, err)
	}

	if dst.SizeBytes != src.SizeBytes {
		return fmt.Errorf("%s: source %d bytes, destination %d bytes: %w",
			permKey, src.SizeBytes, dst.SizeBytes, domain.ErrSizeMismatch)
	}

	// Checksum comparison when the upload recorded one; size alone misses
	// same-length corruption.
	if file.Checksum != "" && dst.ChecksumSHA256 != "" && dst.ChecksumSHA256 != file.Checksum {
		return fmt.Errorf("%s: %w", permKey, domain.ErrChecksumMismatch)
	}

	return nil
}

// withRetry runs op with a bounded per-call timeout and retries transient
// store errors. Missing blobs are not transient and fail immediately.
func (c *coordinator) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= c.cfg.CopyRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.CopyRetryBackoff):
			}
		}

		opCtx, cancel := context.WithTimeout(ctx, c.cfg.CopyTimeout)
		err = op(opCtx)
		cancel()

		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrBlobNotFound) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
