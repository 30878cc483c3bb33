package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/prospect"
)

// Client-facing error messages.
const (
	msgInvalidBody     = "Invalid request body"
	msgFEINMissing     = "Missing required parameter: fein"
	msgNameMissing     = "Missing required parameter: name"
	msgIndustryMissing = "Industry is required to progress"
	msgContactMissing  = "Valid contact is required to progress"
	msgUnknownOutcome  = "Status must be Won or Lost to close a deal"
	msgTerminal        = "Business cannot progress further"
	msgNotFound        = "Business not found"
	msgExists          = "Business already exists"
	msgConflict        = "Business was modified concurrently"
	msgTooManyRequests = "Too many requests"

	msgCreateFailed   = "Failed to create business"
	msgProgressFailed = "Failed to progress business"
	msgStatusFailed   = "Failed to retrieve business status"
)

// mapError converts prospect sentinel errors to an HTTP status and message.
// Anything unrecognised is a 500 with the caller's fallback message.
func mapError(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, prospect.ErrFEINRequired):
		return http.StatusBadRequest, msgFEINMissing
	case errors.Is(err, prospect.ErrNameRequired):
		return http.StatusBadRequest, msgNameMissing
	case errors.Is(err, prospect.ErrIndustryRequired):
		return http.StatusBadRequest, msgIndustryMissing
	case errors.Is(err, prospect.ErrContactRequired):
		return http.StatusBadRequest, msgContactMissing
	case errors.Is(err, prospect.ErrUnknownOutcome):
		return http.StatusBadRequest, msgUnknownOutcome
	case errors.Is(err, prospect.ErrTerminalState):
		return http.StatusBadRequest, msgTerminal
	case errors.Is(err, prospect.ErrBusinessNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, prospect.ErrBusinessExists):
		return http.StatusConflict, msgExists
	case errors.Is(err, prospect.ErrVersionConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, fallback
	}
}

func (a *API) writeError(ctx forge.Context, err error, fallback string) error {
	status, msg := mapError(err, fallback)
	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx.Context(), msg,
			slog.String("fein", ctx.Param("fein")),
			slog.String("error", err.Error()),
		)
	}
	return ctx.Status(status).JSON(ErrorResponse{Error: msg})
}
