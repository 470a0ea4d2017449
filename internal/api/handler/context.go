package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/middleware"
	"github.com/groupcast/groupcast-api/internal/core/domain"
)

// currentUser extracts the end user resolved by the identity middleware and
// performs a fast-fail check before any service call. Guarded routes always
// have one; a nil here means the route is wired without its guard.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentIdentity(c).User
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// currentAdmin is the bearer-token counterpart of currentUser.
func currentAdmin(c echo.Context) (*domain.Admin, error) {
	admin := middleware.CurrentIdentity(c).Admin
	if admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return admin, nil
}

// pathID parses the :id segment. A non-numeric id is a 404, matching the
// behavior of an id that simply does not exist.
func pathID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}
