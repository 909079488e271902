package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siemlab/console/internal/api/dto"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/pkg/validator"
	"github.com/siemlab/console/internal/workflow"
)

// IncidentHandler serves incident workflow mutations
type IncidentHandler struct {
	controller *workflow.Controller
	validator  *validator.Validator
	logger     *logger.Logger
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(controller *workflow.Controller, v *validator.Validator, log *logger.Logger) *IncidentHandler {
	return &IncidentHandler{controller: controller, validator: v, logger: log}
}

// Update changes an incident's status and, optionally, its assignment.
// The response body is the server-acknowledged incident.
func (h *IncidentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateIncidentRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := validateDTO(h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if req.AssignedTo != nil {
		if err := h.controller.StageAssignment(id, *req.AssignedTo); err != nil {
			writeAppError(w, err)
			return
		}
	}

	updated, err := h.controller.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, updated)
}
