package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1RegisterAssetRequest registers a rendered asset (waveform or pdf)
// already written to temporary storage by the rendering pipeline
type V1RegisterAssetRequest struct {
	Role        string `json:"role"`
	TempKey     string `json:"temp_key"`
	ContentType string `json:"content_type"`
}

func (h *HandlerV1) RegisterAssetV1(w http.ResponseWriter, r *http.Request) {

	orderID := chi.URLParam(r, "orderID")
	uuidOrderID, parseErr := uuid.Parse(orderID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	var req V1RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding register asset request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Role == "" || req.TempKey == "" || req.ContentType == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	role, roleErr := domain.ParseFileRole(req.Role)
	if roleErr != nil {
		http.Error(w, roleErr.Error(), http.StatusBadRequest)
		return
	}

	registerErr := h.orderService.RegisterRenderedAsset(r.Context(), uuidOrderID, role, req.TempKey, req.ContentType)
	switch {
	case errors.Is(registerErr, domain.ErrOrderNotFound):
		http.Error(w, registerErr.Error(), http.StatusNotFound)
		return
	case errors.Is(registerErr, domain.ErrInvalidFileRole),
		errors.Is(registerErr, domain.ErrAlreadyExists),
		errors.Is(registerErr, domain.ErrBlobNotFound):
		http.Error(w, registerErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(registerErr, domain.ErrMigrationPrecondition):
		http.Error(w, registerErr.Error(), http.StatusConflict)
		return
	case registerErr != nil:
		h.logger.Error("error registering rendered asset", "error", registerErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
