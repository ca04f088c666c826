package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/repository"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/adapters/storage"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uploadConfig() config.UploadConfig {
	return config.UploadConfig{
		MaxPhotoSize: 20 << 20,
		MaxAudioSize: 100 << 20,
	}
}

func TestOrderService_RequestAssetUpload_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	orderID := uuid.New()
	existing := domain.Order{ID: orderID, Status: domain.OrderStatusPending, MigrationState: domain.MigrationStateNotStarted}
	tempKey := "tmp/" + orderID.String() + "/photo.jpg"
	expectedURL := "https://store.local/" + tempKey
	expiresAt := time.Now().Add(15 * time.Minute)
	headers := map[string]string{"x-amz-checksum-sha256": "abcd"}

	mockUow.GetOrderRepoMock().On("FindByID", ctx, orderID).Return(&existing, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetOrderFileRepoMock().On("Create", ctx, mock.MatchedBy(func(f domain.OrderFile) bool {
		return f.OrderID == orderID && f.Role == domain.FileRolePhoto && f.TempKey == tempKey && f.Checksum == "abcd"
	})).Return(nil)
	mockStorage.On("GeneratePresignedTempUpload", ctx, tempKey, "abcd").Return(expectedURL, headers, &expiresAt, nil)

	// Act
	url, gotHeaders, gotExpires, err := service.RequestAssetUpload(ctx, orderID, domain.FileRolePhoto, "me.jpg", "image/jpeg", 1024, "abcd")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, expectedURL, *url)
	assert.Equal(t, headers, gotHeaders)
	assert.WithinDuration(t, expiresAt, *gotExpires, time.Second)
	mockUow.GetOrderFileRepoMock().AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestOrderService_RequestAssetUpload_RejectsOversizedFile(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	url, _, _, err := service.RequestAssetUpload(ctx, uuid.New(), domain.FileRolePhoto, "me.jpg", "image/jpeg", (20<<20)+1, "abcd")

	assert.Nil(t, url)
	assert.ErrorIs(t, err, domain.ErrFileSizeTooBig)
	mockStorage.AssertNotCalled(t, "GeneratePresignedTempUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_RequestAssetUpload_RejectsWrongMimeForRole(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	url, _, _, err := service.RequestAssetUpload(ctx, uuid.New(), domain.FileRolePhoto, "song.mp3", "audio/mpeg", 1024, "abcd")

	assert.Nil(t, url)
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
}

func TestOrderService_RequestAssetUpload_RejectsRenderedRoles(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	url, _, _, err := service.RequestAssetUpload(ctx, uuid.New(), domain.FileRoleWaveform, "w.png", "image/png", 1024, "abcd")

	assert.Nil(t, url)
	assert.ErrorIs(t, err, domain.ErrInvalidFileRole)
}

func TestOrderService_RequestAssetUpload_RejectsMigratedOrder(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	orderID := uuid.New()
	migrated := domain.Order{ID: orderID, MigrationState: domain.MigrationStateCompleted}
	mockUow.GetOrderRepoMock().On("FindByID", ctx, orderID).Return(&migrated, nil)

	url, _, _, err := service.RequestAssetUpload(ctx, orderID, domain.FileRolePhoto, "me.jpg", "image/jpeg", 1024, "abcd")

	assert.Nil(t, url)
	assert.ErrorIs(t, err, domain.ErrMigrationPrecondition)
}

func TestOrderService_RequestAssetUpload_DuplicateRole(t *testing.T) {
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := order.NewOrderService(mockUow, mockStorage, uploadConfig())

	orderID := uuid.New()
	existing := domain.Order{ID: orderID, MigrationState: domain.MigrationStateNotStarted}

	mockUow.GetOrderRepoMock().On("FindByID", ctx, orderID).Return(&existing, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetOrderFileRepoMock().On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists)

	url, _, _, err := service.RequestAssetUpload(ctx, orderID, domain.FileRolePhoto, "me.jpg", "image/jpeg", 1024, "abcd")

	assert.Nil(t, url)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	mockStorage.AssertNotCalled(t, "GeneratePresignedTempUpload", mock.Anything, mock.Anything, mock.Anything)
}
