package ports

import (
	"context"
	"net/http"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// SessionAuthenticator resolves the end-user identity carried by the
// session cookie. The contract distinguishes three outcomes:
//
//   - (user, nil): a valid session resolved to a live user.
//   - (nil, nil): no session credential supplied.
//   - (nil, err): a credential was supplied and could not be verified or
//     resolved. Callers absorb the error into an anonymous identity but log
//     and count it separately from the no-credential case.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*domain.User, error)
}

// SessionIssuer mints and clears the session cookie that carries the
// end-user identity between requests. The counterpart of
// SessionAuthenticator: one writes the credential, the other reads it.
type SessionIssuer interface {
	IssueCookie(user *domain.User) (*http.Cookie, error)
	ClearCookie() *http.Cookie
}

// OAuthProfile is the normalized identity returned by the external provider
// after a successful code exchange.
type OAuthProfile struct {
	OpenID      string
	Email       string
	Name        string
	LoginMethod string
}

// IdentityProvider is the external OAuth collaborator used for end-user
// login. Only the authorize-redirect and code-exchange steps are visible to
// this service.
type IdentityProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*OAuthProfile, error)
}

// LoginThrottle limits password attempts per login key (admin email).
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted right now.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, key string) error
}

// AdminAuthService authenticates back-office operators and issues their
// bearer tokens.
type AdminAuthService interface {
	// Login verifies email+password and returns a signed admin token.
	// Returns domain.ErrInvalidCredentials on any credential failure and
	// domain.ErrTooManyAttempts when throttled.
	Login(ctx context.Context, email, password, ip string) (string, *domain.Admin, error)
}

// UserService owns the end-user login lifecycle around the OAuth provider.
type UserService interface {
	// CompleteOAuthLogin upserts the user for the given provider profile,
	// stamps last-signed-in, and elevates the configured owner to the admin
	// role. Returns the persisted user.
	CompleteOAuthLogin(ctx context.Context, profile OAuthProfile) (*domain.User, error)
}
