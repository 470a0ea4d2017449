package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/metrics"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// AdminAuthHandler exposes operator login.
type AdminAuthHandler struct {
	auth ports.AdminAuthService
}

func NewAdminAuthHandler(auth ports.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

type adminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type adminLoginResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

// Login verifies operator credentials and returns a bearer token.
//
// @Summary      Operator login
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, admin, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, adminLoginResponse{
		Token: token,
		Admin: adminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	})
}
