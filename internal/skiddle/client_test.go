package skiddle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleBody = `{
	"results": [
		{"eventname": "Warehouse Project", "date": "2026-09-12",
		 "venue": {"name": "Depot Mayfield", "town": "Manchester"},
		 "link": "https://www.skiddle.com/whats-on/1"},
		{"eventname": "Boomtown", "date": "2026-08-05",
		 "venue": {"name": "Matterley Estate", "town": "Winchester"},
		 "link": "https://www.skiddle.com/whats-on/2"}
	]
}`

func TestFetchEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("popular feed carries key, limit and ordering", func(t *testing.T) {
		var gotQuery map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			if r.URL.Path != "/api/v1/events/" {
				t.Errorf("path = %q", r.URL.Path)
			}
			w.Write([]byte(sampleBody))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key", time.Second)
		events, err := c.FetchEvents(ctx, FeedPopular, 10)
		if err != nil {
			t.Fatalf("FetchEvents: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("got %d events, want 2", len(events))
		}
		if events[0].Title != "Warehouse Project" || events[0].City != "Manchester" {
			t.Errorf("first event = %+v", events[0])
		}
		if events[1].Venue != "Matterley Estate" || events[1].URL != "https://www.skiddle.com/whats-on/2" {
			t.Errorf("second event = %+v", events[1])
		}
		if got := gotQuery["api_key"]; len(got) != 1 || got[0] != "test-key" {
			t.Errorf("api_key = %v", got)
		}
		if got := gotQuery["limit"]; len(got) != 1 || got[0] != "10" {
			t.Errorf("limit = %v", got)
		}
		if got := gotQuery["order"]; len(got) != 1 || got[0] != "popularity" {
			t.Errorf("order = %v", got)
		}
		if _, ok := gotQuery["eventcode"]; ok {
			t.Error("popular feed must not send eventcode")
		}
	})

	t.Run("festival feed filters by eventcode", func(t *testing.T) {
		var gotQuery map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(sampleBody))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key", time.Second)
		if _, err := c.FetchEvents(ctx, FeedFestivals, 10); err != nil {
			t.Fatalf("FetchEvents: %v", err)
		}
		if got := gotQuery["eventcode"]; len(got) != 1 || got[0] != "FEST" {
			t.Errorf("eventcode = %v", got)
		}
		if _, ok := gotQuery["order"]; ok {
			t.Error("festival feed must not send order")
		}
	})

	t.Run("json without results is an empty feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"error": 0, "totalcount": "0"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key", time.Second)
		events, err := c.FetchEvents(ctx, FeedPopular, 10)
		if err != nil {
			t.Fatalf("FetchEvents: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("got %d events, want 0", len(events))
		}
	})

	t.Run("non-json body is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key", time.Second)
		if _, err := c.FetchEvents(ctx, FeedPopular, 10); !errors.Is(err, ErrUpstreamMalformed) {
			t.Fatalf("error = %v, want ErrUpstreamMalformed", err)
		}
	})

	t.Run("error status is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key", time.Second)
		if _, err := c.FetchEvents(ctx, FeedPopular, 10); !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
		}
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // shut down before use

		c := NewClient(srv.URL, "test-key", time.Second)
		if _, err := c.FetchEvents(ctx, FeedPopular, 10); !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
		}
	})
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	page, err := c.FetchPage(context.Background(), FeedPopular, 999, 10)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if page.Number != 1 || page.TotalItems != 2 {
		t.Fatalf("page = %+v", page)
	}
}
