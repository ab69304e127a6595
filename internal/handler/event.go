package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/model"
	"github.com/iliyamo/event-discovery-booking/internal/repository"
)

// EventHandler serves event CRUD, browsing and the calendar feed.
// Organizer-only operations (update, delete) authorize by comparing
// the caller against the stored organizer_id; there is no role
// hierarchy.
type EventHandler struct {
	Events     *repository.EventRepo
	Categories *repository.CategoryRepo
	Bookings   *repository.BookingRepo
	Reviews    *repository.ReviewRepo
	Saved      *repository.SavedEventRepo
}

// NewEventHandler constructs an EventHandler and panics if any
// dependency is nil.
func NewEventHandler(events *repository.EventRepo, categories *repository.CategoryRepo, bookings *repository.BookingRepo, reviews *repository.ReviewRepo, saved *repository.SavedEventRepo) *EventHandler {
	if events == nil || categories == nil || bookings == nil || reviews == nil || saved == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Categories: categories, Bookings: bookings, Reviews: reviews, Saved: saved}
}

type eventReq struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Date             string   `json:"date"` // RFC3339
	Venue            string   `json:"venue"`
	City             string   `json:"city"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	CategoryID       uint64   `json:"category_id"`
	TicketPriceCents uint32   `json:"ticket_price_cents"`
}

func (req *eventReq) validate() (time.Time, string) {
	if strings.TrimSpace(req.Title) == "" {
		return time.Time{}, "title is required"
	}
	if req.CategoryID == 0 {
		return time.Time{}, "category_id is required"
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return time.Time{}, "date must be RFC3339"
	}
	return date, ""
}

// Create handles POST /v1/events.  The caller becomes the organizer.
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ev := model.Event{
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Date:             date,
		Venue:            req.Venue,
		City:             req.City,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		CategoryID:       req.CategoryID,
		OrganizerID:      userID,
		TicketPriceCents: req.TicketPriceCents,
	}
	if err := h.Events.Create(c.Request().Context(), &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// eventDetail is the enriched payload served for a single event.
type eventDetail struct {
	Event         model.Event    `json:"event"`
	BookingCount  int            `json:"booking_count"`
	Reviews       []model.Review `json:"reviews"`
	AverageRating *float64       `json:"average_rating"`
	HasBooked     bool           `json:"has_booked"`
	HasSaved      bool           `json:"has_saved"`
}

// Get handles GET /v1/events/:id.  The booking count and average
// rating are derived by query on every request.
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.Reviews.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	avg, err := h.Reviews.AverageRating(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	count, err := h.Bookings.CountByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	detail := eventDetail{
		Event:         ev,
		BookingCount:  count,
		Reviews:       reviews,
		AverageRating: avg,
	}
	// Booked/saved flags only apply to authenticated callers.
	if uid, err := getUserID(c); err == nil {
		if booked, err := h.Bookings.Exists(ctx, uid, id); err == nil {
			detail.HasBooked = booked
		}
		if saved, err := h.Saved.Exists(ctx, uid, id); err == nil {
			detail.HasSaved = saved
		}
	}
	return c.JSON(http.StatusOK, detail)
}

// List handles GET /v1/events with optional filters: category, q
// (title/description), date (YYYY-MM-DD), location (venue substring),
// min_price and max_price in cents.
func (h *EventHandler) List(c echo.Context) error {
	var q repository.EventSearchQuery

	if s := c.QueryParam("category"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
		}
		q.CategoryID = id
	}
	q.Text = c.QueryParam("q")
	if s := c.QueryParam("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		q.Date = &d
	}
	q.Venue = c.QueryParam("location")
	if s := c.QueryParam("min_price"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		v := uint32(n)
		q.MinPriceCents = &v
	}
	if s := c.QueryParam("max_price"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		v := uint32(n)
		q.MaxPriceCents = &v
	}

	ctx := c.Request().Context()
	events, err := h.Events.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	categories, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"events":     events,
		"categories": categories,
	})
}

// Update handles PUT /v1/events/:id, organizer only.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.OrganizerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not authorized to edit this event"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ev.Title = strings.TrimSpace(req.Title)
	ev.Description = req.Description
	ev.Date = date
	ev.Venue = req.Venue
	ev.City = req.City
	ev.Latitude = req.Latitude
	ev.Longitude = req.Longitude
	ev.CategoryID = req.CategoryID
	ev.TicketPriceCents = req.TicketPriceCents

	if err := h.Events.Update(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /v1/events/:id, organizer only.  Bookings,
// reviews and saves cascade with the event.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.OrganizerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not authorized to delete this event"})
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Calendar handles GET /v1/events/calendar/data, serving every event
// as a {title, start, url} entry for calendar widgets.
func (h *EventHandler) Calendar(c echo.Context) error {
	entries, err := h.Events.CalendarEntries(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// MyEvents handles GET /v1/me/events: the caller's organized events.
func (h *EventHandler) MyEvents(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListByOrganizer(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}
