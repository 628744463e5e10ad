package http

import (
	"errors"
	"net/http"

	"bazaarlink/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse maps a use-case error to its HTTP status. Unavailable maps
// to 400: "no agents right now" is an answer to the request, not a broken
// service.
func errorResponse(ctx echo.Context, err error) error {
	return ctx.JSON(statusCode(err), ErrorResponse{
		Code:    statusCode(err),
		Message: err.Error(),
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrUnavailable),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Authentication required",
	})
}
