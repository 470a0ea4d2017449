package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// stateCookieName holds the anti-forgery nonce between the authorize
// redirect and the provider callback.
const stateCookieName = "groupcast_oauth_state"

// AuthHandler drives the end-user OAuth login flow and session lifecycle.
type AuthHandler struct {
	provider    ports.IdentityProvider
	users       ports.UserService
	sessions    ports.SessionIssuer
	redirectURL string
}

func NewAuthHandler(provider ports.IdentityProvider, users ports.UserService, sessions ports.SessionIssuer, redirectURL string) *AuthHandler {
	if redirectURL == "" {
		redirectURL = "/"
	}
	return &AuthHandler{provider: provider, users: users, sessions: sessions, redirectURL: redirectURL}
}

type userResponse struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	ExpiresAt          *time.Time `json:"subscription_expires_at,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		SubscriptionStatus: u.SubscriptionStatus,
		TrialEndsAt:        u.TrialEndsAt,
		ExpiresAt:          u.SubscriptionExpiresAt,
	}
}

// Login starts the OAuth flow.
//
// @Summary      Redirect to the identity provider
// @Tags         auth
// @Success      302
// @Router       /v1/auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	state := uuid.NewString()

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.provider.AuthorizeURL(state))
}

// Callback completes the OAuth flow: state check, code exchange, user
// upsert, session cookie.
//
// @Summary      OAuth provider callback
// @Tags         auth
// @Param        code   query  string  true   "Authorization code"
// @Param        state  query  string  true   "Anti-forgery state"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing code or state")
	}

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value != state {
		return echo.NewHTTPError(http.StatusUnauthorized, "state mismatch")
	}

	profile, err := h.provider.Exchange(c.Request().Context(), code)
	if err != nil {
		return domain.ErrUnauthorized
	}

	user, err := h.users.CompleteOAuthLogin(c.Request().Context(), *profile)
	if err != nil {
		return err
	}

	session, err := h.sessions.IssueCookie(user)
	if err != nil {
		return err
	}
	c.SetCookie(session)

	// The state nonce is single-use.
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	return c.Redirect(http.StatusFound, h.redirectURL)
}

// Me returns the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout clears the session cookie.
//
// @Summary      End the current session
// @Tags         auth
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ClearCookie())
	return c.NoContent(http.StatusNoContent)
}
