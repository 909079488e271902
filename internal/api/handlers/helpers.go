package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/pkg/validator"
)

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest("invalid JSON request body")
	}
	return nil
}

// validateDTO runs struct validation and wraps failures
func validateDTO(v *validator.Validator, dst interface{}) *errors.AppError {
	if verrs := v.Validate(dst); len(verrs) > 0 {
		return errors.ValidationError("request validation failed", verrs)
	}
	return nil
}

// writeAppError writes err as an AppError response, wrapping unknown
// error types as internal.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("unexpected error", err))
}
