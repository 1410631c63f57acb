package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types carried by CustomError.
const (
	ErrTypeValidation   = "validation"
	ErrTypeNotFound     = "not_found"
	ErrTypeDependency   = "dependency"
	ErrTypeUnauthorized = "unauthorized"
)

// CustomError is an error with an HTTP status and a client-facing message.
type CustomError struct {
	Code    int
	Message string
	Type    string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError reports bad input or a missing referenced entity.
func NewValidationError(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: ErrTypeValidation}
}

// NewNotFoundError reports a record that does not exist.
func NewNotFoundError(entity string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: entity + " not found", Type: ErrTypeNotFound}
}

// NewDependencyError reports a delete blocked by dependent rows.
func NewDependencyError(format string, args ...interface{}) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: ErrTypeDependency}
}

// NewUnauthorizedError reports a missing or rejected credential.
func NewUnauthorizedError(message string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: ErrTypeUnauthorized}
}

// AsCustomError unwraps err into a CustomError when it carries one.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found CustomError.
func IsNotFound(err error) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.Type == ErrTypeNotFound
}
