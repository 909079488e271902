package handlers

import (
	"context"
	"net/http"

	"github.com/siemlab/console/internal/api/dto"
	"github.com/siemlab/console/internal/domain/hunting"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/pkg/validator"
)

// QueryRunner executes KQL queries. *client.HuntingService satisfies it.
type QueryRunner interface {
	Query(ctx context.Context, query string) (*hunting.QueryResult, error)
}

// HuntingHandler serves ad-hoc KQL query execution
type HuntingHandler struct {
	runner    QueryRunner
	validator *validator.Validator
	logger    *logger.Logger
}

// NewHuntingHandler creates a new hunting handler
func NewHuntingHandler(runner QueryRunner, v *validator.Validator, log *logger.Logger) *HuntingHandler {
	return &HuntingHandler{runner: runner, validator: v, logger: log}
}

// Run executes a query. A query rejected by the engine still returns
// 200: the rejection lives in the result's error field, matching the
// editor's expectations.
func (h *HuntingHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.QueryRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := validateDTO(h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	result, err := h.runner.Query(r.Context(), req.Query)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}
