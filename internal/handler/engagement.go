package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/repository"
	"github.com/iliyamo/event-discovery-booking/internal/service"
)

// EngagementHandler serves the per-user engagement actions: book,
// cancel, review, save and unsave, plus the caller's own booking and
// saved-event lists.
type EngagementHandler struct {
	Svc      *service.Engagement
	Bookings *repository.BookingRepo
	Saved    *repository.SavedEventRepo
}

// NewEngagementHandler constructs an EngagementHandler and panics if
// any dependency is nil.
func NewEngagementHandler(svc *service.Engagement, bookings *repository.BookingRepo, saved *repository.SavedEventRepo) *EngagementHandler {
	if svc == nil || bookings == nil || saved == nil {
		panic("nil dependency passed to NewEngagementHandler")
	}
	return &EngagementHandler{Svc: svc, Bookings: bookings, Saved: saved}
}

// Book handles POST /v1/events/:id/book.  A second booking for the
// same event is rejected with a conflict.
func (h *EngagementHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	booking, err := h.Svc.Book(c.Request().Context(), userID, eventID)
	if err != nil {
		return engagementError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// CancelBooking handles DELETE /v1/events/:id/book.  After a cancel
// the user may book the same event again.
func (h *EngagementHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Svc.CancelBooking(c.Request().Context(), userID, eventID); err != nil {
		return engagementError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview handles POST /v1/events/:id/reviews.  Only attendees
// may review, and only once per event.
func (h *EngagementHandler) SubmitReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	review, err := h.Svc.SubmitReview(c.Request().Context(), userID, eventID, req.Rating, req.Comment)
	if err != nil {
		return engagementError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// SaveEvent handles POST /v1/events/:id/save.  Saving an already
// saved event returns the existing record rather than an error.
func (h *EngagementHandler) SaveEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	saved, created, err := h.Svc.SaveEvent(c.Request().Context(), userID, eventID)
	if err != nil {
		return engagementError(c, err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"saved_event": saved, "created": created})
}

// UnsaveEvent handles DELETE /v1/events/:id/save.  Removing an event
// that was never saved is not an error.
func (h *EngagementHandler) UnsaveEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	removed, err := h.Svc.UnsaveEvent(c.Request().Context(), userID, eventID)
	if err != nil {
		return engagementError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

// MyBookings handles GET /v1/me/bookings: the events the caller has
// booked tickets for.
func (h *EngagementHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Bookings.EventsBookedByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// MySavedEvents handles GET /v1/me/saved: the caller's saved events.
func (h *EngagementHandler) MySavedEvents(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Saved.EventsSavedByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}
