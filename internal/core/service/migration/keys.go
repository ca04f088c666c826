package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// PermanentKey derives the permanent storage key for one role of an order.
// Keys are deterministic: retried migrations overwrite the same destination
// instead of duplicating blobs.
func PermanentKey(orderID uuid.UUID, role domain.FileRole, tempKey string) string {
	ext := strings.ToLower(filepath.Ext(tempKey))
	return fmt.Sprintf("orders/%s/%s%s", orderID, role, ext)
}
