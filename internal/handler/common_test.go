package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEngagementError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"event not found", service.ErrEventNotFound, http.StatusNotFound},
		{"already booked", service.ErrAlreadyBooked, http.StatusConflict},
		{"booking not found", service.ErrBookingNotFound, http.StatusNotFound},
		{"not booked", service.ErrNotBooked, http.StatusUnprocessableEntity},
		{"already reviewed", service.ErrAlreadyReviewed, http.StatusConflict},
		{"invalid rating", service.ErrInvalidRating, http.StatusBadRequest},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := engagementError(c, tc.err); err != nil {
				t.Fatalf("engagementError: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"float64 from json claims", float64(7), 7, true},
		{"string", "42", 42, true},
		{"uint64", uint64(9), 9, true},
		{"missing", nil, 0, false},
		{"garbage string", "abc", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok && (err != nil || got != tc.want) {
				t.Fatalf("getUserID = (%d, %v), want (%d, nil)", got, err, tc.want)
			}
			if !tc.ok && err == nil {
				t.Fatalf("getUserID = %d, want error", got)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("15")

	id, ok := pathID(c, "id")
	if !ok || id != 15 {
		t.Fatalf("pathID = (%d, %v), want (15, true)", id, ok)
	}

	c.SetParamValues("0")
	if _, ok := pathID(c, "id"); ok {
		t.Error("zero id should be rejected")
	}

	c.SetParamValues("abc")
	if _, ok := pathID(c, "id"); ok {
		t.Error("non-numeric id should be rejected")
	}
}
