package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// FeedHandler manages the user's RSS feed registrations.
type FeedHandler struct {
	service ports.FeedService
}

func NewFeedHandler(service ports.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

type createFeedRequest struct {
	FeedURL  string `json:"feed_url"  validate:"required,url"`
	FeedName string `json:"feed_name" validate:"required"`
}

type updateFeedRequest struct {
	FeedURL  *string `json:"feed_url" validate:"omitempty,url"`
	FeedName *string `json:"feed_name"`
	IsActive *bool   `json:"is_active"`
}

// List returns the caller's feeds.
//
// @Summary      List my feeds
// @Tags         feeds
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Feed
// @Failure      401  {object}  map[string]string
// @Router       /v1/feeds [get]
func (h *FeedHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	feeds, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feeds)
}

// Create registers an RSS source.
//
// @Summary      Add a feed
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFeedRequest  true  "Feed details"
// @Success      201   {object}  domain.Feed
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/feeds [post]
func (h *FeedHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createFeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	feed, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateFeedInput{
		FeedURL:  req.FeedURL,
		FeedName: req.FeedName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, feed)
}

// Update modifies one of the caller's feeds.
//
// @Summary      Update a feed
// @Tags         feeds
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                true  "Feed id"
// @Param        body  body  updateFeedRequest  true  "Fields to change"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/feeds/{id} [patch]
func (h *FeedHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateFeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), user.ID, id, ports.UpdateFeedInput{
		FeedURL:  req.FeedURL,
		FeedName: req.FeedName,
		IsActive: req.IsActive,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the caller's feeds.
//
// @Summary      Delete a feed
// @Tags         feeds
// @Security     BearerAuth
// @Param        id  path  int  true  "Feed id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/feeds/{id} [delete]
func (h *FeedHandler) Delete(c echo.Context) error {
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
