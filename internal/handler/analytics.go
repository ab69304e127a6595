package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/service"
)

// AnalyticsHandler serves the organizer-only attendance report.
type AnalyticsHandler struct {
	Svc *service.Analytics
}

// NewAnalyticsHandler constructs an AnalyticsHandler and panics on a
// nil service.
func NewAnalyticsHandler(svc *service.Analytics) *AnalyticsHandler {
	if svc == nil {
		panic("nil analytics service passed to NewAnalyticsHandler")
	}
	return &AnalyticsHandler{Svc: svc}
}

// EventAnalytics handles GET /v1/events/:id/analytics.  Only the
// event's organizer may read the report; everyone else gets a 403
// before any booking data is touched.
func (h *AnalyticsHandler) EventAnalytics(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	report, err := h.Svc.Report(c.Request().Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the organizer may view analytics for this event"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, report)
}
