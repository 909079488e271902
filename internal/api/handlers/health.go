package handlers

import (
	"net/http"

	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/view"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store *view.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store *view.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz handles the liveness probe
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles the readiness probe. The gateway is ready once the
// first snapshot refresh has completed, degraded or not.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.store.LastRefresh().IsZero() {
		utils.WriteError(w, errors.New("SERVICE_UNAVAILABLE", "initial snapshot refresh pending", http.StatusServiceUnavailable))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"last_refresh": h.store.LastRefresh(),
		"warnings":     h.store.Warnings(),
	})
}
