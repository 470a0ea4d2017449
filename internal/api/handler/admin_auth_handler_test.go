package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

type stubAdminAuthService struct {
	loginFn func(ctx context.Context, email, password, ip string) (string, *domain.Admin, error)
}

func (s *stubAdminAuthService) Login(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
	return s.loginFn(ctx, email, password, ip)
}

func newLoginContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAdminAuthService{
		loginFn: func(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
			if email != "ops@groupcast.io" || password != "hunter2-strong" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &domain.Admin{ID: 7, Email: email, Name: "Ops"}, nil
		},
	}
	h := NewAdminAuthHandler(stub)

	c, rec := newLoginContext(`{"email":"ops@groupcast.io","password":"hunter2-strong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Errorf("token = %v", resp["token"])
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok {
		t.Fatal("expected admin in response")
	}
	if admin["id"] != float64(7) || admin["email"] != "ops@groupcast.io" {
		t.Errorf("unexpected admin payload: %+v", admin)
	}
}

func TestAdminAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAdminAuthService{
		loginFn: func(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAdminAuthHandler(stub)

	c, _ := newLoginContext(`{"email":"ops@groupcast.io","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAdminAuthService{
		loginFn: func(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
			return "", nil, domain.ErrTooManyAttempts
		},
	}
	h := NewAdminAuthHandler(stub)

	c, _ := newLoginContext(`{"email":"ops@groupcast.io","password":"hunter2-strong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestAdminAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAdminAuthService{
		loginFn: func(ctx context.Context, email, password, ip string) (string, *domain.Admin, error) {
			t.Fatal("service must not be called on invalid payload")
			return "", nil, nil
		},
	}
	h := NewAdminAuthHandler(stub)

	c, _ := newLoginContext(`{"email":"not-an-email"}`)
	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422", err)
	}
}
