// Package httpx holds the JSON and RFC 7807 response helpers shared by the
// accounting handlers.
package httpx

import (
	"context"
	"errors"
	"net/http"
)

// Sentinels handlers may return without a domain specific mapping.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBodyTooLarge = errors.New("request body too large")
)

// StatusClientClosedRequest is logged when the caller went away first.
const StatusClientClosedRequest = 499

// RespondError writes the problem response for err. Unknown errors become
// 500 without leaking their text.
func RespondError(w http.ResponseWriter, err error) {
	var fieldErr *FieldErrors
	switch {
	case errors.As(err, &fieldErr):
		JSON(w, http.StatusBadRequest, ProblemDetail{
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Detail: fieldErr.Error(),
			Fields: fieldErr.Fields,
		})
	case errors.Is(err, ErrBodyTooLarge):
		Problem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "Insufficient Permission")
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue")
	case errors.Is(err, context.DeadlineExceeded):
		Problem(w, http.StatusGatewayTimeout, "Timeout", "The request took too long")
	case errors.Is(err, context.Canceled):
		w.WriteHeader(StatusClientClosedRequest)
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
