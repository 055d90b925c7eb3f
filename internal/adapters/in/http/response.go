// Package http exposes the application use cases over REST.
// All endpoints respond with a uniform envelope: {success:true, data:{...}} on
// success and {success:false, error:{code, message}} on failure. Business
// failures travel in the envelope with HTTP 200; 401 is reserved for
// transport-level authentication failures.
package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Stable error codes. Callers key their logic off these identifiers, so they
// must never change.
const (
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeOrderNotFound           = "ORDER_NOT_FOUND"
	CodeAccessDenied            = "ACCESS_DENIED"
	CodeInvalidStatus           = "INVALID_STATUS"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeCannotCancel            = "CANNOT_CANCEL"
	CodeDatabaseError           = "DATABASE_ERROR"
	CodeUserExists              = "USER_EXISTS"
	CodeEmailExists             = "EMAIL_EXISTS"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeValidationError         = "VALIDATION_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func respondData(ctx echo.Context, data any) error {
	return ctx.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCode(ctx echo.Context, code, message string) error {
	return ctx.JSON(http.StatusOK, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message},
	})
}

func respondError(ctx echo.Context, err error) error {
	return respondCode(ctx, errorCode(err), err.Error())
}

// errorCode classifies an application error into its stable code.
// CannotCancel unwraps to ErrInvalidStatusTransition as well, so it is
// checked first.
func errorCode(err error) string {
	switch {
	case errors.Is(err, errs.ErrCannotCancel):
		return CodeCannotCancel
	case errors.Is(err, errs.ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, errs.ErrAccessDenied):
		return CodeAccessDenied
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFoundCode(err)
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return CodeEmailExists
	case errors.Is(err, errs.ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, errs.ErrValueIsRequired):
		return CodeValidationError
	case errors.Is(err, errs.ErrValueIsInvalid):
		return invalidValueCode(err)
	default:
		return CodeDatabaseError
	}
}

func notFoundCode(err error) string {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) && notFound.ParamName == "order_id" {
		return CodeOrderNotFound
	}
	return CodeUserNotFound
}

// invalidValueCode separates an unrecognized order status, which has its own
// stable code, from other malformed input.
func invalidValueCode(err error) string {
	var invalid *errs.ValueIsInvalidError
	if errors.As(err, &invalid) && invalid.ParamName == "status" {
		return CodeInvalidStatus
	}
	return CodeValidationError
}
