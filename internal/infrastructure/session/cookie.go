// Package session stores the end-user identity in a signed cookie. The
// cookie value is a user token minted by the shared verifier, so session
// and bearer credentials share one signing secret and one claim format.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/groupcast/groupcast-api/internal/auth"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// CookieManager implements ports.SessionAuthenticator and
// ports.SessionIssuer over an HttpOnly cookie.
type CookieManager struct {
	name     string
	ttl      time.Duration
	secure   bool
	verifier *auth.Verifier
	users    ports.UserRepository
}

// NewCookieManager returns a CookieManager writing cookies under the given
// name with the given lifetime. secure controls the cookie Secure flag and
// should be true everywhere except local development.
func NewCookieManager(name string, ttl time.Duration, secure bool, verifier *auth.Verifier, users ports.UserRepository) *CookieManager {
	return &CookieManager{
		name:     name,
		ttl:      ttl,
		secure:   secure,
		verifier: verifier,
		users:    users,
	}
}

// IssueCookie mints a session cookie for the user.
func (m *CookieManager) IssueCookie(user *domain.User) (*http.Cookie, error) {
	token, err := m.verifier.IssueUserToken(user.ID, user.Email, m.ttl)
	if err != nil {
		return nil, fmt.Errorf("session: issue cookie: %w", err)
	}
	return &http.Cookie{
		Name:     m.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie returns an expired cookie that removes the session.
func (m *CookieManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Authenticate resolves the request's session cookie to a live user.
// Returns (nil, nil) when no cookie is present, and a non-nil error when a
// cookie is present but cannot be verified or resolved.
func (m *CookieManager) Authenticate(ctx context.Context, r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	claims := m.verifier.Verify(cookie.Value)
	if claims == nil || claims.Type != auth.TypeUser {
		return nil, errors.New("session: cookie token invalid")
	}

	user, err := m.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("session: resolve user %d: %w", claims.UserID, err)
	}
	return user, nil
}
