package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// AdminHandler exposes the operator surface. Routes are registered behind
// the admin-token guard; every mutation is attributed to the acting admin.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type updateUserRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Role               *string `json:"role"  validate:"omitempty,oneof=user admin"`
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=trial active expired suspended lifetime"`
}

type grantAccessRequest struct {
	AccessType string `json:"access_type" validate:"required,oneof=trial lifetime custom"`
	Days       int    `json:"days"        validate:"omitempty,gt=0"`
}

type packageRequest struct {
	Name           string `json:"name"             validate:"required"`
	Price          string `json:"price"            validate:"required"`
	DurationDays   int    `json:"duration_days"    validate:"required,gt=0"`
	MaxGroups      int    `json:"max_groups"       validate:"omitempty,min=0"`
	MaxPostsPerDay int    `json:"max_posts_per_day" validate:"omitempty,min=0"`
	Features       string `json:"features"`
}

type updatePackageRequest struct {
	Name           *string `json:"name"`
	Price          *string `json:"price"`
	DurationDays   *int    `json:"duration_days" validate:"omitempty,gt=0"`
	MaxGroups      *int    `json:"max_groups"    validate:"omitempty,min=0"`
	MaxPostsPerDay *int    `json:"max_posts_per_day" validate:"omitempty,min=0"`
	Features       *string `json:"features"`
	IsActive       *bool   `json:"is_active"`
}

type recordPaymentRequest struct {
	UserID        int64  `json:"user_id"        validate:"required,gt=0"`
	PackageID     *int64 `json:"package_id"`
	Amount        string `json:"amount"         validate:"required"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"         validate:"required,oneof=pending completed failed refunded"`
}

type settingsRequest struct {
	Settings []settingEntry `json:"settings" validate:"required,min=1,dive"`
}

type settingEntry struct {
	Key   string `json:"key"   validate:"required"`
	Value string `json:"value"`
}

// Dashboard returns operator stats plus recent activity.
//
// @Summary      Operator dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminDashboard
// @Failure      401  {object}  map[string]string
// @Router       /v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	dashboard, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Overview is the dashboard variant served to admin-role users on the main
// product surface. Same numbers, different trust domain: the session
// cookie plus the admin role admits it, an operator token does not.
//
// @Summary      Admin overview for in-app admins
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ports.AdminDashboard
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	dashboard, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// --- Users ---

// ListUsers returns all users, optionally filtered by a search term.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Match against email or name"
// @Success      200     {array}   domain.User
// @Failure      401     {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser modifies a user account.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), admin.ID, id, ports.UserUpdate{
		Name:               req.Name,
		Email:              req.Email,
		Role:               req.Role,
		SubscriptionStatus: req.SubscriptionStatus,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), admin.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GrantAccess grants a user trial, lifetime or custom-duration access.
//
// @Summary      Grant subscription access
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                 true  "User id"
// @Param        body  body  grantAccessRequest  true  "Grant details"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/access [post]
func (h *AdminHandler) GrantAccess(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req grantAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.GrantAccess(c.Request().Context(), admin.ID, ports.GrantAccessInput{
		UserID:     id,
		AccessType: req.AccessType,
		Days:       req.Days,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Packages ---

// ListPackages returns all packages, active or not.
//
// @Summary      List packages
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Package
// @Router       /v1/admin/packages [get]
func (h *AdminHandler) ListPackages(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	packages, err := h.service.ListPackages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, packages)
}

// CreatePackage adds a subscription tier.
//
// @Summary      Create a package
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      packageRequest  true  "Package details"
// @Success      201   {object}  domain.Package
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/packages [post]
func (h *AdminHandler) CreatePackage(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req packageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pkg, err := h.service.CreatePackage(c.Request().Context(), admin.ID, ports.CreatePackageInput{
		Name:           req.Name,
		Price:          req.Price,
		DurationDays:   req.DurationDays,
		MaxGroups:      req.MaxGroups,
		MaxPostsPerDay: req.MaxPostsPerDay,
		Features:       req.Features,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pkg)
}

// UpdatePackage modifies a subscription tier.
//
// @Summary      Update a package
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                   true  "Package id"
// @Param        body  body  updatePackageRequest  true  "Fields to change"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/packages/{id} [patch]
func (h *AdminHandler) UpdatePackage(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.UpdatePackage(c.Request().Context(), admin.ID, id, ports.UpdatePackageInput{
		Name:           req.Name,
		Price:          req.Price,
		DurationDays:   req.DurationDays,
		MaxGroups:      req.MaxGroups,
		MaxPostsPerDay: req.MaxPostsPerDay,
		Features:       req.Features,
		IsActive:       req.IsActive,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePackage removes a subscription tier.
//
// @Summary      Delete a package
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "Package id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/packages/{id} [delete]
func (h *AdminHandler) DeletePackage(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePackage(c.Request().Context(), admin.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Payments ---

// ListPayments returns all payments across users.
//
// @Summary      List payments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Payment
// @Router       /v1/admin/payments [get]
func (h *AdminHandler) ListPayments(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	payments, err := h.service.ListPayments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// RecordPayment enters a payment manually.
//
// @Summary      Record a manual payment
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/payments [post]
func (h *AdminHandler) RecordPayment(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.service.RecordPayment(c.Request().Context(), admin.ID, ports.RecordPaymentInput{
		UserID:        req.UserID,
		PackageID:     req.PackageID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// --- Settings ---

// ListSettings returns all system settings.
//
// @Summary      List settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Setting
// @Router       /v1/admin/settings [get]
func (h *AdminHandler) ListSettings(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	settings, err := h.service.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts a batch of key/value settings.
//
// @Summary      Update settings
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  settingsRequest  true  "Settings batch"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /v1/admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	inputs := make([]ports.SettingInput, 0, len(req.Settings))
	for _, s := range req.Settings {
		inputs = append(inputs, ports.SettingInput{Key: s.Key, Value: s.Value})
	}

	if err := h.service.UpdateSettings(c.Request().Context(), admin.ID, inputs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Logs ---

// ListLogs returns the most recent activity entries.
//
// @Summary      List activity logs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Max entries (default 100)"
// @Success      200    {array}  domain.ActivityLog
// @Router       /v1/admin/logs [get]
func (h *AdminHandler) ListLogs(c echo.Context) error {
	if _, err := currentAdmin(c); err != nil {
		return err
	}

	var limit int64
	_ = echo.QueryParamsBinder(c).Int64("limit", &limit).BindError()

	logs, err := h.service.ListLogs(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
