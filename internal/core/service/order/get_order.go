package order

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// GetOrder returns the order, its file refs, and when the final PDF has
// reached permanent storage a presigned download URL for it. No download
// is ever issued while the migration is not committed.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, []domain.OrderFile, *string, *time.Time, error) {
	found, err := s.uow.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	files, err := s.uow.OrderFileRepo().FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if found.MigrationState != domain.MigrationStateCompleted {
		return found, files, nil, nil, nil
	}

	for _, file := range files {
		if file.Role == domain.FileRolePDF && file.PermKey != "" {
			url, expiresAt, presignErr := s.storage.GeneratePresignedDownload(ctx, file.PermKey)
			if presignErr != nil {
				return nil, nil, nil, nil, presignErr
			}
			return found, files, &url, expiresAt, nil
		}
	}

	return found, files, nil, nil, nil
}
