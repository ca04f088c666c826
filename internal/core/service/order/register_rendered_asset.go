package order

import (
	"context"
	"fmt"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// RegisterRenderedAsset binds a blob produced by an upstream renderer
// (waveform preview, final PDF) already sitting in the temporary bucket to
// an order role, so the migration machinery carries it like any upload.
func (s *orderService) RegisterRenderedAsset(ctx context.Context, orderID uuid.UUID, role domain.FileRole, tempKey string, contentType string) error {
	if role != domain.FileRoleWaveform && role != domain.FileRolePDF {
		return fmt.Errorf("%w: role %s is not a rendered asset", domain.ErrInvalidFileRole, role)
	}

	order, err := s.uow.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.MigrationState != domain.MigrationStateNotStarted {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrMigrationPrecondition)
	}

	info, err := s.storage.StatTemporary(ctx, tempKey)
	if err != nil {
		return err
	}

	return s.uow.OrderFileRepo().Create(ctx, domain.OrderFile{
		OrderID:     orderID,
		Role:        role,
		TempKey:     tempKey,
		SizeBytes:   info.SizeBytes,
		ContentType: contentType,
		Checksum:    info.ChecksumSHA256,
	})
}
