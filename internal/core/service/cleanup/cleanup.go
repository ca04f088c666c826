package cleanup

import (
	"log/slog"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
)

type cleanupService struct {
	uow     port.UnitOfWork
	storage port.BlobStorage
	cfg     config.MigrationConfig
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, storage port.BlobStorage, cfg config.MigrationConfig, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:     uow,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}
