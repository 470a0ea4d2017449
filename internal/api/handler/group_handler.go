package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// GroupHandler handles HTTP requests for the user's posting targets.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type createGroupRequest struct {
	GroupID   string `json:"group_id"   validate:"required"`
	GroupName string `json:"group_name" validate:"required"`
	GroupURL  string `json:"group_url"  validate:"omitempty,url"`
}

type updateGroupRequest struct {
	GroupName *string `json:"group_name"`
	GroupURL  *string `json:"group_url" validate:"omitempty,url"`
	IsActive  *bool   `json:"is_active"`
}

// List returns the caller's groups.
//
// @Summary      List my groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Group
// @Failure      401  {object}  map[string]string
// @Router       /v1/groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	groups, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Create registers a new posting target.
//
// @Summary      Add a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group details"
// @Success      201   {object}  domain.Group
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	group, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateGroupInput{
		GroupID:   req.GroupID,
		GroupName: req.GroupName,
		GroupURL:  req.GroupURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

// Update modifies one of the caller's groups.
//
// @Summary      Update a group
// @Tags         groups
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Group id"
// @Param        body  body  updateGroupRequest  true  "Fields to change"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/groups/{id} [patch]
func (h *GroupHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), user.ID, id, ports.UpdateGroupInput{
		GroupName: req.GroupName,
		GroupURL:  req.GroupURL,
		IsActive:  req.IsActive,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the caller's groups.
//
// @Summary      Delete a group
// @Tags         groups
// @Security     BearerAuth
// @Param        id  path  int  true  "Group id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/groups/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
