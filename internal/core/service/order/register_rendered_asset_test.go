package order_test

import (
	"context"
	"testing"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/repository"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/storage"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_RegisterRenderedAsset_Success(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	orderID := uuid.New()
	existing := domain.Order{ID: orderID, MigrationState: domain.MigrationStateNotStarted}
	tempKey := "tmp/" + orderID.String() + "/waveform.png"

	mockUow.GetOrderRepoMock().On("FindByID", ctx, orderID).Return(&existing, nil)
	mockStorage.On("StatTemporary", ctx, tempKey).Return(&port.ObjectInfo{
		Key:            tempKey,
		SizeBytes:      2048,
		ChecksumSHA256: "ffff",
	}, nil)
	mockUow.GetOrderFileRepoMock().On("Create", ctx, mock.MatchedBy(func(f domain.OrderFile) bool {
		return f.Role == domain.FileRoleWaveform && f.SizeBytes == 2048 && f.Checksum == "ffff"
	})).Return(nil)

	err := service.RegisterRenderedAsset(ctx, orderID, domain.FileRoleWaveform, tempKey, "image/png")

	assert.NoError(t, err)
	mockUow.GetOrderFileRepoMock().AssertExpectations(t)
}

func TestOrderService_RegisterRenderedAsset_RejectsUploadRoles(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	err := service.RegisterRenderedAsset(ctx, uuid.New(), domain.FileRolePhoto, "tmp/x.jpg", "image/jpeg")

	assert.ErrorIs(t, err, domain.ErrInvalidFileRole)
	mockStorage.AssertNotCalled(t, "StatTemporary", mock.Anything, mock.Anything)
}

func TestOrderService_RegisterRenderedAsset_MissingBlob(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	orderID := uuid.New()
	existing := domain.Order{ID: orderID, MigrationState: domain.MigrationStateNotStarted}
	tempKey := "tmp/" + orderID.String() + "/waveform.png"

	mockUow.GetOrderRepoMock().On("FindByID", ctx, orderID).Return(&existing, nil)
	mockStorage.On("StatTemporary", ctx, tempKey).Return((*port.ObjectInfo)(nil), domain.ErrBlobNotFound)

	err := service.RegisterRenderedAsset(ctx, orderID, domain.FileRoleWaveform, tempKey, "image/png")

	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
	mockUow.GetOrderFileRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
