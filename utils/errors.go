package utils

import (
	"fmt"
	"net/http"
)

// AppError carries the (statusCode, message, details) triple every core
// operation surfaces on failure. Details hold caller-actionable context such
// as a coupon shortfall amount or the remaining stock.
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, details interface{}) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// BadRequestError creates a 400 error (bad input, empty cart, stock)
func BadRequestError(message string, details interface{}) *AppError {
	return NewAppError(http.StatusBadRequest, message, details)
}

// ForbiddenError creates a 403 error (requester is not the owner)
func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

// NotFoundError creates a 404 error (referenced entity absent)
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// ConflictError creates a 409 error (uniqueness or business-rule violation)
func ConflictError(message string, details interface{}) *AppError {
	return NewAppError(http.StatusConflict, message, details)
}

// UnprocessableError creates a 422 error (operation invalid for the
// current state, e.g. coupon threshold unmet)
func UnprocessableError(message string, details interface{}) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, details)
}

// GatewayError propagates a payment-processor failure with its own reason.
func GatewayError(code int, reason string, cause error) *AppError {
	if code == 0 {
		code = http.StatusBadGateway
	}
	return &AppError{Code: code, Message: reason, Err: cause}
}

// InternalError creates a 500 error wrapping an unexpected cause
func InternalError(message string, cause error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: cause}
}

// GetAppError returns the AppError if the error is one, nil otherwise
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusNotFound
	}
	return false
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusConflict
	}
	return false
}
