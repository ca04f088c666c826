package migration_test

import (
	"testing"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/service/migration"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPermanentKey_Deterministic(t *testing.T) {
	orderID := uuid.New()

	first := migration.PermanentKey(orderID, domain.FileRoleAudio, "tmp/"+orderID.String()+"/audio.mp3")
	second := migration.PermanentKey(orderID, domain.FileRoleAudio, "tmp/"+orderID.String()+"/audio.mp3")

	assert.Equal(t, first, second)
	assert.Equal(t, "orders/"+orderID.String()+"/audio.mp3", first)
}

func TestPermanentKey_ExtensionHandling(t *testing.T) {
	orderID := uuid.MustParse("9f4b4dbb-5408-4e9f-b11d-2f5a61371d2a")

	tests := []struct {
		name    string
		role    domain.FileRole
		tempKey string
		want    string
	}{
		{
			name:    "lowercases extension",
			role:    domain.FileRolePhoto,
			tempKey: "tmp/9f4b/photo.JPG",
			want:    "orders/9f4b4dbb-5408-4e9f-b11d-2f5a61371d2a/photo.jpg",
		},
		{
			name:    "no extension",
			role:    domain.FileRoleWaveform,
			tempKey: "tmp/9f4b/waveform",
			want:    "orders/9f4b4dbb-5408-4e9f-b11d-2f5a61371d2a/waveform",
		},
		{
			name:    "pdf role",
			role:    domain.FileRolePDF,
			tempKey: "tmp/9f4b/render.pdf",
			want:    "orders/9f4b4dbb-5408-4e9f-b11d-2f5a61371d2a/pdf.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.PermanentKey(orderID, tt.role, tt.tempKey))
		})
	}
}
