package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

// PostHandler handles HTTP requests for the user's posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Content           string     `json:"content"             validate:"required"`
	SpintaxContent    string     `json:"spintax_content"`
	MediaURLs         string     `json:"media_urls"`
	ScheduledAt       *time.Time `json:"scheduled_at"`
	GroupsToPost      string     `json:"groups_to_post"`
	DelayBetweenPosts int        `json:"delay_between_posts" validate:"omitempty,min=1"`
	ScheduleType      string     `json:"schedule_type"       validate:"omitempty,oneof=once daily weekly custom"`
	ScheduleConfig    string     `json:"schedule_config"`
}

type updatePostRequest struct {
	Content           *string    `json:"content"`
	SpintaxContent    *string    `json:"spintax_content"`
	MediaURLs         *string    `json:"media_urls"`
	ScheduledAt       *time.Time `json:"scheduled_at"`
	Status            *string    `json:"status" validate:"omitempty,oneof=draft scheduled posting completed failed"`
	GroupsToPost      *string    `json:"groups_to_post"`
	DelayBetweenPosts *int       `json:"delay_between_posts" validate:"omitempty,min=1"`
	ScheduleType      *string    `json:"schedule_type"       validate:"omitempty,oneof=once daily weekly custom"`
	ScheduleConfig    *string    `json:"schedule_config"`
}

// List returns the caller's posts.
//
// @Summary      List my posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  map[string]string
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns one of the caller's posts.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create stores a new post, deriving its initial status from the schedule.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content and schedule"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), user.ID, ports.CreatePostInput{
		Content:           req.Content,
		SpintaxContent:    req.SpintaxContent,
		MediaURLs:         req.MediaURLs,
		ScheduledAt:       req.ScheduledAt,
		GroupsToPost:      req.GroupsToPost,
		DelayBetweenPosts: req.DelayBetweenPosts,
		ScheduleType:      req.ScheduleType,
		ScheduleConfig:    req.ScheduleConfig,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update modifies one of the caller's posts.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                true  "Post id"
// @Param        body  body  updatePostRequest  true  "Fields to change"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Status != nil && !domain.ValidPostStatus(*req.Status) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid status")
	}

	if err := h.service.Update(c.Request().Context(), user.ID, id, ports.UpdatePostInput{
		Content:           req.Content,
		SpintaxContent:    req.SpintaxContent,
		MediaURLs:         req.MediaURLs,
		ScheduledAt:       req.ScheduledAt,
		Status:            req.Status,
		GroupsToPost:      req.GroupsToPost,
		DelayBetweenPosts: req.DelayBetweenPosts,
		ScheduleType:      req.ScheduleType,
		ScheduleConfig:    req.ScheduleConfig,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the caller's posts.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
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
