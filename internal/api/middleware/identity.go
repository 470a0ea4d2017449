package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/metrics"
	"github.com/groupcast/groupcast-api/internal/auth"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
	"github.com/groupcast/groupcast-api/pkg/logger"
)

// identityKey is the echo context key the resolved Identity lives under.
const identityKey = "identity"

// Identity builds the per-request identity from two independent trust
// domains: the session cookie (end users) and the Authorization bearer
// token (operators, or users on non-browser clients). It never rejects a
// request. Every failure mode collapses to the anonymous identity; guards
// downstream decide whether anonymous is acceptable.
func Identity(
	sessions ports.SessionAuthenticator,
	verifier *auth.Verifier,
	users ports.UserRepository,
	admins ports.AdminRepository,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			log := logger.Get()

			var identity domain.Identity

			user, err := sessions.Authenticate(ctx, c.Request())
			switch {
			case err != nil:
				// A credential was presented and failed. The request still
				// proceeds anonymously, but this is not the same as no
				// credential at all.
				metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("session credential rejected")
			case user != nil:
				metrics.SessionResolutionsTotal.WithLabelValues("ok").Inc()
				identity.User = user
			default:
				metrics.SessionResolutionsTotal.WithLabelValues("none").Inc()
			}

			if token := auth.ExtractBearerToken(c.Request().Header.Get("Authorization")); token != "" {
				claims := verifier.Verify(token)
				if claims == nil {
					metrics.TokenVerificationsTotal.WithLabelValues("unknown", "invalid").Inc()
					log.Debug().Str("path", c.Path()).Msg("bearer token rejected")
				} else {
					switch claims.Type {
					case auth.TypeAdmin:
						admin, err := admins.FindByID(ctx, claims.AdminID)
						if err != nil {
							metrics.TokenVerificationsTotal.WithLabelValues(auth.TypeAdmin, "stale_principal").Inc()
							log.Debug().Err(err).Int64("admin_id", claims.AdminID).Msg("admin token references unknown account")
						} else {
							metrics.TokenVerificationsTotal.WithLabelValues(auth.TypeAdmin, "ok").Inc()
							identity.Admin = admin
						}
					case auth.TypeUser:
						// A user bearer token only fills the user slot when
						// the cookie has not already done so.
						if identity.User == nil {
							tokenUser, err := users.FindByID(ctx, claims.UserID)
							if err != nil {
								metrics.TokenVerificationsTotal.WithLabelValues(auth.TypeUser, "stale_principal").Inc()
								log.Debug().Err(err).Int64("user_id", claims.UserID).Msg("user token references unknown account")
							} else {
								metrics.TokenVerificationsTotal.WithLabelValues(auth.TypeUser, "ok").Inc()
								identity.User = tokenUser
							}
						} else {
							// The token verified but no principal was resolved
							// from it, so it does not count as "ok".
							metrics.TokenVerificationsTotal.WithLabelValues(auth.TypeUser, "superseded").Inc()
						}
					default:
						metrics.TokenVerificationsTotal.WithLabelValues("unknown", "invalid").Inc()
						log.Debug().Str("type", claims.Type).Msg("bearer token has unknown type")
					}
				}
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity attaches an identity to the request context. Outside of the
// Identity middleware itself this is only useful for handler tests.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the identity resolved for this request. Requests
// that never passed through the Identity middleware read as anonymous.
func CurrentIdentity(c echo.Context) domain.Identity {
	identity, _ := c.Get(identityKey).(domain.Identity)
	return identity
}
