package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
)

// PaymentWebhookV1 receives payment gateway notifications. The raw body
// goes straight to the message service so webhook and broker deliveries
// share one idempotent code path.
func (h *HandlerV1) PaymentWebhookV1(w http.ResponseWriter, r *http.Request) {

	body, readErr := io.ReadAll(r.Body)
	if readErr != nil {
		http.Error(w, readErr.Error(), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		http.Error(w, "empty body", http.StatusBadRequest)
		return
	}

	handleErr := h.messageService.HandleMessage(r.Context(), body)
	switch {
	case handleErr == nil:
		w.WriteHeader(http.StatusOK)
		return
	case errors.Is(handleErr, domain.ErrMigrationInProgress):
		// another delivery is migrating this order; ask the gateway to
		// retry later
		h.logger.Info("migration busy, requesting retry", "error", handleErr)
		http.Error(w, handleErr.Error(), http.StatusConflict)
		return
	case errors.Is(handleErr, domain.ErrOrderNotFound):
		http.Error(w, handleErr.Error(), http.StatusNotFound)
		return
	default:
		h.logger.Error("error handling payment webhook", "error", handleErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}
