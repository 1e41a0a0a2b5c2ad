package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}

	if !New(ErrCodeServiceUnavailable, "down", http.StatusServiceUnavailable).Retryable {
		t.Error("SERVICE_UNAVAILABLE should be retryable")
	}
}

func TestAppError_Error(t *testing.T) {
	err := InvalidInput("sceneId", "must not be empty")
	if got := err.Error(); got != "INVALID_INPUT: Invalid input: must not be empty" {
		t.Errorf("unexpected message %q", got)
	}

	cause := fmt.Errorf("decode failed")
	withCause := InvalidInput("", "bad json").WithCause(cause)
	if !strings.Contains(withCause.Error(), "cause: decode failed") {
		t.Errorf("expected cause in message, got %q", withCause.Error())
	}
	if !stderrors.Is(withCause, cause) {
		t.Error("expected Unwrap to expose cause")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"not found", NotFound("/x"), ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", MethodNotAllowed("PUT", "/health"), ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"invalid input", InvalidInput("f", "r"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized},
		{"unavailable", ServiceUnavailable("scene-svc"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable},
		{"internal", Internal(fmt.Errorf("x")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
		})
	}
}

func TestInvalidInput_EmptyField(t *testing.T) {
	if _, ok := InvalidInput("", "reason").Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusBadRequest, ErrCodeInvalidInput},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeUnauthorized},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusTeapot, ErrCodeInvalidInput},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "scene-svc")
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
			if err.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", err.HTTPStatus, tt.status)
			}
		})
	}
}

func TestToResponse_JSON(t *testing.T) {
	err := NotFound("/scene-svc/nope")
	data, jsonErr := json.Marshal(err.ToResponse())
	if jsonErr != nil {
		t.Fatalf("marshal: %v", jsonErr)
	}
	var decoded map[string]map[string]any
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("unmarshal: %v", jsonErr)
	}
	if decoded["error"]["code"] != string(ErrCodeNotFound) {
		t.Errorf("unexpected code: %v", decoded["error"]["code"])
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInternal {
		t.Fatalf("expected wrapped AppError, got %v %v", appErr, ok)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError=true")
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error is not an AppError")
	}
}

func TestResponseFor(t *testing.T) {
	status, body := ResponseFor(fmt.Errorf("wrap: %w", NotFound("/x")))
	if status != http.StatusNotFound || body.Error.Code != ErrCodeNotFound {
		t.Errorf("got %d %+v", status, body)
	}

	status, body = ResponseFor(fmt.Errorf("boom"))
	if status != http.StatusInternalServerError || body.Error.Code != ErrCodeInternal {
		t.Errorf("got %d %+v", status, body)
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := New(ErrCodeInvalidInput, "too large", http.StatusRequestEntityTooLarge).
		WithDetail("limit_bytes", 8).
		WithDetail("field", "body")
	if err.Details["limit_bytes"] != 8 || err.Details["field"] != "body" {
		t.Errorf("Details = %v", err.Details)
	}
}
