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

// V1RequestUploadRequest is the request for a presigned upload of a
// customer asset (photo or audio)
type V1RequestUploadRequest struct {
	Role           string `json:"role"`
	FileName       string `json:"filename"`
	ContentType    string `json:"content_type"`
	SizeBytes      int64  `json:"size_bytes"`
	ChecksumSha256 string `json:"checksum_sha256"`
}

// V1RequestUploadResponse is the response carrying the presigned URL
type V1RequestUploadResponse struct {
	PresignedURL string            `json:"presigned_url"`
	Headers      map[string]string `json:"headers"`
	ExpiresAt    *time.Time        `json:"expires_at"`
}

func (h *HandlerV1) RequestUploadV1(w http.ResponseWriter, r *http.Request) {

	orderID := chi.URLParam(r, "orderID")
	uuidOrderID, parseErr := uuid.Parse(orderID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	var req V1RequestUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Role == "" || req.FileName == "" || req.ContentType == "" || req.SizeBytes == 0 || req.ChecksumSha256 == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	role, roleErr := domain.ParseFileRole(req.Role)
	if roleErr != nil {
		http.Error(w, roleErr.Error(), http.StatusBadRequest)
		return
	}

	presignedURL, headers, expiresAt, requestErr := h.orderService.RequestAssetUpload(r.Context(), uuidOrderID, role, req.FileName, req.ContentType, req.SizeBytes, req.ChecksumSha256)
	switch {
	case errors.Is(requestErr, domain.ErrOrderNotFound):
		http.Error(w, requestErr.Error(), http.StatusNotFound)
		return
	case errors.Is(requestErr, domain.ErrInvalidFileType),
		errors.Is(requestErr, domain.ErrInvalidFileRole),
		errors.Is(requestErr, domain.ErrFileSizeTooBig),
		errors.Is(requestErr, domain.ErrAlreadyExists):
		h.logger.Error("invalid upload request", "error", requestErr)
		http.Error(w, requestErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(requestErr, domain.ErrMigrationPrecondition):
		// migration already ran for this order; its temp area is frozen
		http.Error(w, requestErr.Error(), http.StatusConflict)
		return
	case requestErr != nil:
		h.logger.Error("error requesting presigned url", "error", requestErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		var finalPresignedURL string
		if presignedURL != nil {
			finalPresignedURL = *presignedURL
		}

		resp := V1RequestUploadResponse{
			PresignedURL: finalPresignedURL,
			Headers:      headers,
			ExpiresAt:    expiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
