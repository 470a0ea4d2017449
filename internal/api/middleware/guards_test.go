package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

func runGuard(t *testing.T, guard echo.MiddlewareFunc, identity domain.Identity) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(identityKey, identity)

	called := false
	handler := guard(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called
}

func TestRequireUser(t *testing.T) {
	user := &domain.User{ID: 1, Role: domain.RoleUser}
	admin := &domain.Admin{ID: 7}

	tests := []struct {
		name     string
		identity domain.Identity
		wantErr  error
	}{
		{"anonymous rejected", domain.Identity{}, domain.ErrUnauthorized},
		{"session user admitted", domain.Identity{User: user}, nil},
		{"admin token alone does not satisfy user guard", domain.Identity{Admin: admin}, domain.ErrUnauthorized},
		{"user plus admin admitted", domain.Identity{User: user, Admin: admin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, called := runGuard(t, echo.MiddlewareFunc(RequireUser), tt.identity)
			if tt.wantErr == nil {
				if err != nil || !called {
					t.Fatalf("expected pass, err=%v called=%v", err, called)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if called {
				t.Fatal("next handler ran after rejection")
			}
		})
	}
}

func TestRequireAdminRole(t *testing.T) {
	tests := []struct {
		name     string
		identity domain.Identity
		wantErr  error
	}{
		{"anonymous rejected", domain.Identity{}, domain.ErrUnauthorized},
		{"plain user forbidden", domain.Identity{User: &domain.User{ID: 1, Role: domain.RoleUser}}, domain.ErrForbidden},
		{"admin-role user admitted", domain.Identity{User: &domain.User{ID: 1, Role: domain.RoleAdmin}}, nil},
		{"operator token does not satisfy role guard", domain.Identity{Admin: &domain.Admin{ID: 7}}, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, called := runGuard(t, echo.MiddlewareFunc(RequireAdminRole), tt.identity)
			if tt.wantErr == nil {
				if err != nil || !called {
					t.Fatalf("expected pass, err=%v called=%v", err, called)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireAdminToken(t *testing.T) {
	tests := []struct {
		name     string
		identity domain.Identity
		wantErr  error
	}{
		{"anonymous rejected", domain.Identity{}, domain.ErrUnauthorized},
		{"operator token admitted", domain.Identity{Admin: &domain.Admin{ID: 7}}, nil},
		{"admin-role session cookie does not satisfy token guard",
			domain.Identity{User: &domain.User{ID: 1, Role: domain.RoleAdmin}}, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, called := runGuard(t, echo.MiddlewareFunc(RequireAdminToken), tt.identity)
			if tt.wantErr == nil {
				if err != nil || !called {
					t.Fatalf("expected pass, err=%v called=%v", err, called)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCurrentIdentity_NoMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if !CurrentIdentity(c).IsAnonymous() {
		t.Fatal("missing middleware must read as anonymous")
	}
}
