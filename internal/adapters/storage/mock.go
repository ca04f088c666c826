package storage

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) StatTemporary(ctx context.Context, key string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockStorage) StatPermanent(ctx context.Context, key string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockStorage) CopyToPermanent(ctx context.Context, tempKey string, permKey string) error {
	args := m.Called(ctx, tempKey, permKey)
	return args.Error(0)
}

func (m *MockStorage) DeleteTemporary(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) DeletePermanent(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) GeneratePresignedTempUpload(ctx context.Context, key string, checksumSha256 string) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, key, checksumSha256)
	return args.String(0), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockStorage) GeneratePresignedDownload(ctx context.Context, permKey string) (string, *time.Time, error) {
	args := m.Called(ctx, permKey)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}
