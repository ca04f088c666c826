package order

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
)

// TempKey derives the temporary storage key for a customer upload
func TempKey(orderID uuid.UUID, role domain.FileRole, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("tmp/%s/%s%s", orderID, role, ext)
}

// RequestAssetUpload records a temporary file ref for an order role and
// hands back a presigned PUT URL into the temporary bucket. Temp refs are
// set once, before payment; re-requesting the same role fails.
func (s *orderService) RequestAssetUpload(ctx context.Context, orderID uuid.UUID, role domain.FileRole, fileName string, contentType string, sizeBytes int64, checksumSha256 string) (*string, map[string]string, *time.Time, error) {
	if sizeBytes > s.maxSizeForRole(role) {
		return nil, nil, nil, domain.ErrFileSizeTooBig
	}

	mimeType, err := validateUploadFile(role, fileName, contentType)
	if err != nil {
		return nil, nil, nil, err
	}

	order, err := s.uow.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, nil, err
	}

	if order.MigrationState != domain.MigrationStateNotStarted {
		return nil, nil, nil, fmt.Errorf("order %s: %w", orderID, domain.ErrMigrationPrecondition)
	}

	tempKey := TempKey(orderID, role, fileName)

	var presignedURL string
	var headers map[string]string
	var expiresAt *time.Time

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		createErr := uow.OrderFileRepo().Create(ctx, domain.OrderFile{
			OrderID:     orderID,
			Role:        role,
			TempKey:     tempKey,
			SizeBytes:   sizeBytes,
			ContentType: mimeType,
			Checksum:    checksumSha256,
		})
		if createErr != nil {
			return createErr
		}

		var storeErr error
		presignedURL, headers, expiresAt, storeErr = s.storage.GeneratePresignedTempUpload(ctx, tempKey, checksumSha256)
		return storeErr
	})

	if txErr != nil {
		return nil, nil, nil, fmt.Errorf("could not generate upload presigned url: %w", txErr)
	}

	return &presignedURL, headers, expiresAt, nil
}
