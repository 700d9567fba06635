package errors

import (
	"net/http"
	"reflect"
	"testing"
)

func TestServiceError_Error(t *testing.T) {
	type fields struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name: "errorType and message is filled out", fields: fields{errorType: ErrorTypeValidation, message: "pH is required"}, want: "pH is required",
		},
		{
			name: "message is empty", fields: fields{errorType: ErrorTypeServerError, message: ""}, want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CommonServiceError{
				errorType: tt.fields.errorType,
				message:   tt.fields.message,
			}
			if got := e.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewServiceError(t *testing.T) {
	got := NewCommonServiceError(ErrorTypeNotFound, "no prediction yet")
	want := CommonServiceError{errorType: ErrorTypeNotFound, message: "no prediction yet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewCommonServiceError() = %v, want %v", got, want)
	}
	if !got.IsErrorType(ErrorTypeNotFound) || got.IsErrorType(ErrorTypeBadRequest) {
		t.Errorf("IsErrorType() mismatch for %v", got.ErrorType())
	}
}

func TestServiceError_ConvertToHTTPError(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeBadRequest, http.StatusBadRequest},
		{ErrorTypeValidation, http.StatusUnprocessableEntity},
		{ErrorTypeServerError, http.StatusInternalServerError},
		{ErrorTypeModel, http.StatusInternalServerError},
		{ErrorType("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			httpErr := NewCommonServiceError(tt.errorType, "message").ConvertToHTTPError()
			if httpErr.Code != tt.want {
				t.Errorf("ConvertToHTTPError().Code = %d, want %d", httpErr.Code, tt.want)
			}
			if httpErr.Message != "message" {
				t.Errorf("ConvertToHTTPError().Message = %v, want message", httpErr.Message)
			}
		})
	}
}
