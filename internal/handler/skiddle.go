package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/skiddle"
)

// SkiddleHandler serves paginated feeds from the Skiddle events API.
type SkiddleHandler struct {
	Client *skiddle.Client
}

// NewSkiddleHandler constructs a SkiddleHandler and panics on a nil
// client.
func NewSkiddleHandler(client *skiddle.Client) *SkiddleHandler {
	if client == nil {
		panic("nil skiddle client passed to NewSkiddleHandler")
	}
	return &SkiddleHandler{Client: client}
}

// PopularFeed handles GET /v1/external/popular?page=N.
func (h *SkiddleHandler) PopularFeed(c echo.Context) error {
	return h.feed(c, skiddle.FeedPopular)
}

// FestivalsFeed handles GET /v1/external/festivals?page=N.
func (h *SkiddleHandler) FestivalsFeed(c echo.Context) error {
	return h.feed(c, skiddle.FeedFestivals)
}

// feed fetches the requested kind and serves one page of results.  A
// non-numeric or out-of-range page is clamped, never rejected.  When
// the upstream returns a malformed body the page is served empty;
// only transport-level failures surface as a gateway error.
func (h *SkiddleHandler) feed(c echo.Context, kind skiddle.FeedKind) error {
	page := 1
	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			page = n
		}
	}
	result, err := h.Client.FetchPage(c.Request().Context(), kind, page, skiddle.DefaultPageSize)
	if err != nil {
		if errors.Is(err, skiddle.ErrUpstreamMalformed) {
			result = skiddle.Paginate(nil, page, skiddle.DefaultPageSize)
			return c.JSON(http.StatusOK, result)
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "external events service is unavailable"})
	}
	return c.JSON(http.StatusOK, result)
}
