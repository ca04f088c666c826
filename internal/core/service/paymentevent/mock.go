package paymentevent

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMessageService struct {
	mock.Mock
}

func NewMockMessageService() *MockMessageService {
	return &MockMessageService{}
}

func (m *MockMessageService) HandleMessage(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
