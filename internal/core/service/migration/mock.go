package migration

import (
	"context"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCoordinator struct {
	mock.Mock
}

func NewMockCoordinator() *MockCoordinator {
	return &MockCoordinator{}
}

func (m *MockCoordinator) Migrate(ctx context.Context, orderID uuid.UUID) (*domain.MigrationResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(*domain.MigrationResult), args.Error(1)
}
