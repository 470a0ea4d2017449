package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/metrics"
	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// Authorization guards. Each guard inspects only the identity slot its trust
// domain owns and returns a domain sentinel on rejection; the central error
// handler maps sentinels to status codes. Guards compose: a route wrapped in
// RequireAdminToken never sees a request without a live admin.

// RequireUser admits requests with a resolved end user (from either the
// session cookie or a user bearer token). Anonymous requests are rejected
// with Unauthorized.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentIdentity(c).User == nil {
			metrics.GuardRejectionsTotal.WithLabelValues("user", "unauthenticated").Inc()
			return domain.ErrUnauthorized
		}
		return next(c)
	}
}

// RequireAdminRole admits end users whose account carries the admin role.
// An anonymous request is Unauthorized; an authenticated non-admin user is
// Forbidden. This checks the user slot, not the bearer-token admin: the two
// are separate trust domains and an operator token does not satisfy it.
func RequireAdminRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentIdentity(c).User
		if user == nil {
			metrics.GuardRejectionsTotal.WithLabelValues("admin_role", "unauthenticated").Inc()
			return domain.ErrUnauthorized
		}
		if user.Role != domain.RoleAdmin {
			metrics.GuardRejectionsTotal.WithLabelValues("admin_role", "forbidden").Inc()
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// RequireAdminToken admits requests carrying a verified operator bearer
// token. A session cookie, even one belonging to an admin-role user, does
// not satisfy it.
func RequireAdminToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentIdentity(c).Admin == nil {
			metrics.GuardRejectionsTotal.WithLabelValues("admin_token", "unauthenticated").Inc()
			return domain.ErrUnauthorized
		}
		return next(c)
	}
}
