package shared

import (
	"errors"
	"log/slog"
	"net/http"

	mdshared "github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

// RespondError renders accounting errors as problem responses. Unexpected
// errors are logged with the operation name.
func RespondError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSON(w, http.StatusBadRequest, httpx.ProblemDetail{
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Detail: verr.Message,
			Fields: verr.Fields,
		})
	case errors.Is(err, httpx.ErrValidation):
		httpx.RespondError(w, err)
	case errors.Is(err, ErrCompanyRequired):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrRootCompanyOnly):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrParentNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, mdshared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "Company not found")
	case errors.Is(err, ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", "A record with this name already exists")
	case errors.Is(err, ErrNoFiscalYear):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Fiscal Year Missing", "No fiscal year covers the requested date")
	default:
		if logger != nil {
			logger.Error(op, slog.Any("error", err))
		}
		httpx.RespondError(w, err)
	}
}
