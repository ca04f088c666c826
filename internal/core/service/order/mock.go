package order

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService() *MockOrderService {
	return &MockOrderService{}
}

func (m *MockOrderService) CreateOrder(ctx context.Context, customerEmail string) (*domain.Order, error) {
	args := m.Called(ctx, customerEmail)
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) RequestAssetUpload(ctx context.Context, orderID uuid.UUID, role domain.FileRole, fileName string, contentType string, sizeBytes int64, checksumSha256 string) (*string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, orderID, role, fileName, contentType, sizeBytes, checksumSha256)
	return args.Get(0).(*string), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockOrderService) RegisterRenderedAsset(ctx context.Context, orderID uuid.UUID, role domain.FileRole, tempKey string, contentType string) error {
	args := m.Called(ctx, orderID, role, tempKey, contentType)
	return args.Error(0)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, []domain.OrderFile, *string, *time.Time, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(*domain.Order), args.Get(1).([]domain.OrderFile), args.Get(2).(*string), args.Get(3).(*time.Time), args.Error(4)
}
