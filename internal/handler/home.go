package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/service"
)

// HomeHandler serves the landing-page feeds: most-booked events and
// per-user recommendations.
type HomeHandler struct {
	Recommender *service.Recommender
}

// NewHomeHandler constructs a HomeHandler and panics on a nil
// recommender.
func NewHomeHandler(recommender *service.Recommender) *HomeHandler {
	if recommender == nil {
		panic("nil recommender passed to NewHomeHandler")
	}
	return &HomeHandler{Recommender: recommender}
}

// Home handles GET /v1/home.  Popular events are always present;
// recommendations are included only for authenticated callers.
func (h *HomeHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	popular, err := h.Recommender.Popular(ctx, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := echo.Map{"popular_events": popular}
	if userID, err := getUserID(c); err == nil {
		recommended, err := h.Recommender.RecommendedFor(ctx, userID, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		resp["recommended_events"] = recommended
	}
	return c.JSON(http.StatusOK, resp)
}

// Recommended handles GET /v1/me/recommendations.
func (h *HomeHandler) Recommended(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Recommender.RecommendedFor(c.Request().Context(), userID, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}
