// Package skiddle fetches third-party event listings from the Skiddle
// API and re-paginates them into the application's own page model.
// Upstream failures are isolated here: a transport failure surfaces as
// ErrUpstreamUnavailable and a response without the expected result
// collection degrades to an empty page, so callers can always render.
package skiddle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// FeedKind selects which feed variant to request from the upstream.
type FeedKind string

const (
	// FeedPopular is the general feed ordered by popularity.
	FeedPopular FeedKind = "popular"
	// FeedFestivals is the festival-filtered feed (eventcode FEST).
	FeedFestivals FeedKind = "festivals"
)

// ErrUpstreamUnavailable is returned when the provider cannot be
// reached or answers with a non-success status.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrUpstreamMalformed is returned when the provider's response body
// is not JSON at all.  A JSON body that merely lacks the results
// array is treated as an empty feed instead.
var ErrUpstreamMalformed = errors.New("upstream response malformed")

// DefaultTimeout bounds each upstream call so a slow provider cannot
// hold a request indefinitely.
const DefaultTimeout = 5 * time.Second

// DefaultBaseURL is the production Skiddle endpoint.
const DefaultBaseURL = "https://www.skiddle.com"

// Client issues requests against the Skiddle events API.  One
// outbound request is made per call; results are never cached.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client.  Empty baseURL falls back to the
// production endpoint and a non-positive timeout falls back to
// DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// upstream response shape: a JSON object carrying a "results" array.
type feedResponse struct {
	Results []feedEvent `json:"results"`
}

type feedEvent struct {
	EventName string `json:"eventname"`
	Date      string `json:"date"`
	Venue     struct {
		Name string `json:"name"`
		Town string `json:"town"`
	} `json:"venue"`
	Link string `json:"link"`
}

// FetchEvents performs one GET against the provider for the given
// feed kind and result limit.  The request carries the API key, the
// limit, and either order=popularity or eventcode=FEST depending on
// the kind.
func (c *Client) FetchEvents(ctx context.Context, kind FeedKind, limit int) ([]model.ExternalEvent, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("limit", strconv.Itoa(limit))
	switch kind {
	case FeedFestivals:
		q.Set("eventcode", "FEST")
	default:
		q.Set("order", "popularity")
	}
	reqURL := c.baseURL + "/api/v1/events/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	var parsed feedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	// A well-formed JSON object without results renders as an empty feed.
	events := make([]model.ExternalEvent, 0, len(parsed.Results))
	for _, e := range parsed.Results {
		events = append(events, model.ExternalEvent{
			Title:     e.EventName,
			StartDate: e.Date,
			Venue:     e.Venue.Name,
			City:      e.Venue.Town,
			URL:       e.Link,
		})
	}
	return events, nil
}

// FetchPage fetches one upstream batch sized to pageSize and slices it
// into the requested page with standard clamping: out-of-range pages
// return the last valid page, never an error.
func (c *Client) FetchPage(ctx context.Context, kind FeedKind, page, pageSize int) (Page, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	events, err := c.FetchEvents(ctx, kind, pageSize)
	if err != nil {
		return Page{}, err
	}
	return Paginate(events, page, pageSize), nil
}
