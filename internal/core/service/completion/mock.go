package completion

import (
	"context"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCompletionService struct {
	mock.Mock
}

func NewMockCompletionService() *MockCompletionService {
	return &MockCompletionService{}
}

func (m *MockCompletionService) OnPaymentConfirmed(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockFulfillmentNotifier struct {
	mock.Mock
}

func NewMockFulfillmentNotifier() *MockFulfillmentNotifier {
	return &MockFulfillmentNotifier{}
}

func (m *MockFulfillmentNotifier) OrderMigrated(ctx context.Context, order domain.Order, refs map[domain.FileRole]string) error {
	args := m.Called(ctx, order, refs)
	return args.Error(0)
}
