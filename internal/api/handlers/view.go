package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/siemlab/console/internal/correlation"
	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/filter"
	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/view"
	"github.com/siemlab/console/internal/workflow"
)

// ViewHandler serves the read side: snapshots, derived incident views,
// and manual refresh.
type ViewHandler struct {
	store      *view.Store
	controller *workflow.Controller
	logger     *logger.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(store *view.Store, controller *workflow.Controller, log *logger.Logger) *ViewHandler {
	return &ViewHandler{store: store, controller: controller, logger: log}
}

// alertDetail is an alert plus its category and technique enrichment
type alertDetail struct {
	alert.Alert
	Tactic              string   `json:"tactic"`
	CategoryDescription string   `json:"categoryDescription,omitempty"`
	RemediationSteps    []string `json:"remediationSteps"`
}

// ListAlerts returns the alert snapshot, filtered by query parameters
func (h *ViewHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	f := alert.Filter{
		Severity: r.URL.Query().Get("severity"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
	}
	alerts := filter.Alerts(h.store.Alerts(), f)
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

// GetAlert returns one alert with detail enrichment
func (h *ViewHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, a := range h.store.Alerts() {
		if a.ID == id {
			utils.WriteSuccess(w, http.StatusOK, alertDetail{
				Alert:               a,
				Tactic:              correlation.TacticFor(a.Technique),
				CategoryDescription: correlation.CategoryDescription(a.Category),
				RemediationSteps:    correlation.RemediationSteps(a.Category),
			})
			return
		}
	}
	utils.WriteError(w, errors.NotFound("alert"))
}

// ListDevices returns the device snapshot, filtered by query parameters
func (h *ViewHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	f := filter.DeviceFilter{
		RiskLevel: r.URL.Query().Get("risk"),
		Search:    r.URL.Query().Get("search"),
	}
	devices := filter.Devices(h.store.Devices(), f)
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"devices": devices,
		"total":   len(devices),
	})
}

// ListIncidents returns the derived incident views, filtered by query
// parameters applied to the underlying incidents.
func (h *ViewHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	f := incident.Filter{
		Severity: r.URL.Query().Get("severity"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
	}

	views := h.store.Views()
	out := make([]correlation.IncidentView, 0, len(views))
	for _, v := range views {
		if len(filter.Incidents([]incident.Incident{v.Incident}, f)) == 1 {
			out = append(out, v)
		}
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"incidents": out,
		"total":     len(out),
	})
}

// GetIncident returns the derived view for one incident
func (h *ViewHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok := h.store.View(id)
	if !ok {
		utils.WriteError(w, errors.NotFound("incident"))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, v)
}

// Refresh re-fetches all collections and rebuilds the derived views
func (h *ViewHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	h.store.Refresh(ctx)
	h.controller.Load(h.store.Incidents())

	utils.WriteSuccessWithMessage(w, http.StatusOK, "snapshot refreshed", map[string]interface{}{
		"last_refresh": h.store.LastRefresh(),
		"warnings":     h.store.Warnings(),
	})
}
