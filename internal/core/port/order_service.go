package port

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// OrderService is an interface to define the pre-payment order surface
type OrderService interface {
	CreateOrder(ctx context.Context, customerEmail string) (*domain.Order, error)
	RequestAssetUpload(ctx context.Context, orderID uuid.UUID, role domain.FileRole, fileName string, contentType string, sizeBytes int64, checksumSha256 string) (*string, map[string]string, *time.Time, error)
	RegisterRenderedAsset(ctx context.Context, orderID uuid.UUID, role domain.FileRole, tempKey string, contentType string) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, []domain.OrderFile, *string, *time.Time, error)
}
