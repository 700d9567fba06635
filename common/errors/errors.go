package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorType string

const (
	ErrorTypeNotFound    ErrorType = "NotFound"
	ErrorTypeServerError ErrorType = "ServerError"
	ErrorTypeBadRequest  ErrorType = "BadRequest"
	ErrorTypeValidation  ErrorType = "Validation"
	ErrorTypeConfig      ErrorType = "ConfigurationError"
	ErrorTypeModel       ErrorType = "ModelError"
	ErrorTypeUnknown     ErrorType = "Unknown"
)

type CommonServiceError struct {
	errorType ErrorType
	message   string
}

type ServiceError interface {
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	Error() string
	ConvertToHTTPError() *echo.HTTPError
}

func (e CommonServiceError) ErrorType() ErrorType {
	return e.errorType
}

func (e CommonServiceError) Message() string {
	return e.message
}

func (e CommonServiceError) Error() string {
	return e.message
}

func (e CommonServiceError) IsErrorType(errorType ErrorType) bool {
	return errorType == e.errorType
}

func (e CommonServiceError) ConvertToHTTPError() *echo.HTTPError {
	return echo.NewHTTPError(errorTypeToCode(e.ErrorType()), e.Message())
}

func NewCommonServiceError(errorType ErrorType, message string) CommonServiceError {
	return CommonServiceError{errorType, message}
}

func errorTypeToCode(status ErrorType) int {
	switch status {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeBadRequest:
		return http.StatusBadRequest
	case ErrorTypeValidation:
		return http.StatusUnprocessableEntity
	case ErrorTypeServerError, ErrorTypeModel, ErrorTypeConfig, ErrorTypeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
