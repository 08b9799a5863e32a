package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/RMvanderGaag/find-a-buddy/internal/api/metrics"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

// MeetupHandler handles HTTP requests for meetup operations. Every route
// acts on behalf of the authenticated caller.
type MeetupHandler struct {
	service ports.MeetupService
}

func NewMeetupHandler(service ports.MeetupService) *MeetupHandler {
	return &MeetupHandler{service: service}
}

// Create handles POST /v1/meetups. The caller becomes the pupil.
//
// @Summary      Invite a coach to a meetup
// @Tags         meetups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createMeetupRequest  true   "Meetup details"
// @Success      201              {object}  meetupResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/meetups [post]
func (h *MeetupHandler) Create(c echo.Context) error {
	pupilID, err := callerID(c)
	if err != nil {
		return err
	}
	var req createMeetupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateMeetupInput{
		Topic:          req.Topic,
		Datetime:       req.Datetime,
		CoachID:        req.Coach,
		PupilID:        pupilID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.MeetupsCreatedTotal.WithLabelValues(view.Topic).Inc()
	return c.JSON(http.StatusCreated, toMeetupResponse(*view))
}

// List handles GET /v1/meetups: every meetup the caller learns in, plus the
// accepted ones the caller coaches.
//
// @Summary      List the caller's meetups
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   meetupResponse
// @Router       /v1/meetups [get]
func (h *MeetupHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	views, err := h.service.GetAll(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeetupResponses(views))
}

// Invites handles GET /v1/meetups/invites.
//
// @Summary      List pending invites where the caller is the pupil
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   meetupResponse
// @Router       /v1/meetups/invites [get]
func (h *MeetupHandler) Invites(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	views, err := h.service.GetInvites(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeetupResponses(views))
}

// Get handles GET /v1/meetups/:id.
//
// @Summary      Get one meetup the caller takes part in
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meetup id"
// @Success      200  {object}  meetupResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/meetups/{id} [get]
func (h *MeetupHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetOne(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	if view == nil {
		return echo.NewHTTPError(http.StatusNotFound, "meetup not found")
	}
	return c.JSON(http.StatusOK, toMeetupResponse(*view))
}

// Accept handles POST /v1/meetups/:id/accept.
//
// @Summary      Accept an invite as its coach
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meetup id"
// @Success      200  {object}  meetupResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/meetups/{id}/accept [post]
func (h *MeetupHandler) Accept(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	view, err := h.service.Accept(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.InvitesAcceptedTotal.Inc()
	return c.JSON(http.StatusOK, toMeetupResponse(*view))
}

// Review handles POST /v1/meetups/:id/review.
//
// @Summary      Review a meetup as its pupil
// @Tags         meetups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Meetup id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  meetupResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/meetups/{id}/review [post]
func (h *MeetupHandler) Review(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.PostReview(c.Request().Context(), userID, c.Param("id"), req.Text, req.Rating)
	if err != nil {
		return err
	}

	metrics.ReviewsPostedTotal.WithLabelValues(strconv.Itoa(req.Rating)).Inc()
	return c.JSON(http.StatusCreated, toMeetupResponse(*view))
}
