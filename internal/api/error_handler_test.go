package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/groups/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestErrorHandlerDomainMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"group not found", domain.ErrGroupNotFound, http.StatusNotFound},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"admin exists", domain.ErrAdminExists, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := runErrorHandler(t, tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestErrorHandlerWrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update group 3"), domain.ErrForbidden)
	code, _ := runErrorHandler(t, wrapped)
	if code != http.StatusForbidden {
		t.Errorf("code = %d, want 403", code)
	}
}

func TestErrorHandlerEchoErrorPassthrough(t *testing.T) {
	code, msg := runErrorHandler(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "bad field"))
	if code != http.StatusUnprocessableEntity {
		t.Errorf("code = %d, want 422", code)
	}
	if msg != "bad field" {
		t.Errorf("msg = %q", msg)
	}
}

func TestErrorHandlerUnknownErrorIsOpaque(t *testing.T) {
	code, msg := runErrorHandler(t, errors.New("pq: connection reset"))
	if code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Errorf("internal detail leaked: %q", msg)
	}
}
