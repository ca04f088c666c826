package order

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
)

type orderService struct {
	uow       port.UnitOfWork
	storage   port.BlobStorage
	uploadCfg config.UploadConfig
}

// NewOrderService creates a new order service
func NewOrderService(uow port.UnitOfWork, storage port.BlobStorage, cfg config.UploadConfig) port.OrderService {
	return &orderService{uow: uow, storage: storage, uploadCfg: cfg}
}

// AllowedMimeTypesByRole is a whitelist of supported MIME types per
// customer-uploaded role and their extensions. Deterministic, does NOT
// rely on OS mime databases (Docker-safe).
var AllowedMimeTypesByRole = map[domain.FileRole]map[string][]string{
	domain.FileRolePhoto: {
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/webp": {".webp"},
		"image/heic": {".heic"},
		"image/heif": {".heif"},
	},
	domain.FileRoleAudio: {
		"audio/mpeg":  {".mp3"},
		"audio/mp4":   {".m4a"},
		"audio/wav":   {".wav"},
		"audio/x-wav": {".wav"},
		"audio/ogg":   {".ogg"},
		"audio/flac":  {".flac"},
	},
}

func (s *orderService) maxSizeForRole(role domain.FileRole) int64 {
	if role == domain.FileRoleAudio {
		return s.uploadCfg.MaxAudioSize
	}
	return s.uploadCfg.MaxPhotoSize
}

func validateUploadFile(role domain.FileRole, filename string, contentType string) (string, error) {
	allowed, ok := AllowedMimeTypesByRole[role]
	if !ok {
		return "", fmt.Errorf("%w: role %s is not customer-uploadable", domain.ErrInvalidFileRole, role)
	}

	mimeType := extractMimeType(contentType)
	if mimeType == "" {
		return "", fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidFileType, contentType)
	}

	allowedExts, ok := allowed[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported MIME type %s for role %s", domain.ErrInvalidFileType, mimeType, role)
	}

	if err := validateExtension(filename, allowedExts); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidFileType, err)
	}

	return mimeType, nil
}

func validateExtension(filename string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("no file extension found")
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf("extension %s is not allowed (expected one of: %v)", ext, allowedExts)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
