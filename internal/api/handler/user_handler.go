package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /v1/users/me.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	view, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// UpdateTopics handles PUT /v1/users/me/topics.
//
// @Summary      Replace the caller's taught and learned topics
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateTopicsRequest  true  "Topic sets"
// @Success      200   {object}  userResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/me/topics [put]
func (h *UserHandler) UpdateTopics(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req updateTopicsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.service.UpdateTopics(c.Request().Context(), userID, req.TopicsTaught, req.TopicsLearned)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

type TopicHandler struct {
	service ports.TopicService
}

func NewTopicHandler(service ports.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

// List handles GET /v1/topics.
//
// @Summary      List all topics
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  topicsResponse
// @Router       /v1/topics [get]
func (h *TopicHandler) List(c echo.Context) error {
	titles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, topicsResponse{Topics: titles})
}

// Create handles POST /v1/topics. Admin only.
//
// @Summary      Add a topic
// @Tags         topics
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  createTopicRequest  true  "Topic"
// @Success      201
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/topics [post]
func (h *TopicHandler) Create(c echo.Context) error {
	var req createTopicRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Create(c.Request().Context(), req.Title); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}
