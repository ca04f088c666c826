package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1OrderFile is one file reference of an order
type V1OrderFile struct {
	Role         string `json:"role"`
	TempKey      string `json:"temp_key,omitempty"`
	PermanentKey string `json:"permanent_key,omitempty"`
	SizeBytes    int64  `json:"size_bytes"`
	ContentType  string `json:"content_type"`
}

// V1GetOrderResponse is the response to get order
type V1GetOrderResponse struct {
	OrderID        uuid.UUID     `json:"order_id"`
	Status         string        `json:"status"`
	MigrationState string        `json:"migration_state"`
	Files          []V1OrderFile `json:"files"`
	DownloadURL    string        `json:"download_url,omitempty"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
}

// GetOrderV1 is the function that handles GetOrder
func (h *HandlerV1) GetOrderV1(w http.ResponseWriter, r *http.Request) {

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "order id is required", http.StatusBadRequest)
		return
	}
	uuidOrderID, parseErr := uuid.Parse(orderID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	found, files, downloadURL, expiresAt, err := h.orderService.GetOrder(r.Context(), uuidOrderID)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting order", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		respFiles := make([]V1OrderFile, 0, len(files))
		for _, file := range files {
			respFiles = append(respFiles, V1OrderFile{
				Role:         string(file.Role),
				TempKey:      file.TempKey,
				PermanentKey: file.PermKey,
				SizeBytes:    file.SizeBytes,
				ContentType:  file.ContentType,
			})
		}

		resp := V1GetOrderResponse{
			OrderID:        found.ID,
			Status:         string(found.Status),
			MigrationState: string(found.MigrationState),
			Files:          respFiles,
			ExpiresAt:      expiresAt,
		}
		if downloadURL != nil {
			resp.DownloadURL = *downloadURL
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
