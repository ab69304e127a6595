package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

type fakeBookingLister struct {
	bookings []model.Booking
	called   bool
}

func (f *fakeBookingLister) ListByEvent(_ context.Context, _ uint64) ([]model.Booking, error) {
	f.called = true
	return f.bookings, nil
}

type fakeUsers struct {
	users []model.User
}

func (f *fakeUsers) GetByIDs(_ context.Context, ids []uint64) ([]model.User, error) {
	want := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.User
	for _, u := range f.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	events := testEvents() // event 1 is organized by user 9

	t.Run("organizer gets the full report", func(t *testing.T) {
		lister := &fakeBookingLister{bookings: []model.Booking{
			{ID: 1, UserID: 7, EventID: 1},
			{ID: 2, UserID: 8, EventID: 1},
		}}
		users := &fakeUsers{users: []model.User{
			{ID: 7, Username: "ana", Email: "ana@example.com"},
			{ID: 8, Username: "ben", Email: "ben@example.com"},
		}}
		svc := NewAnalytics(events, lister, users)

		report, err := svc.Report(ctx, 1, 9)
		if err != nil {
			t.Fatalf("Report: %v", err)
		}
		if report.BookingCount != 2 {
			t.Errorf("BookingCount = %d, want 2", report.BookingCount)
		}
		if len(report.Attendees) != 2 {
			t.Fatalf("got %d attendees, want 2", len(report.Attendees))
		}
		if report.Attendees[0].Username != "ana" || report.Attendees[1].Username != "ben" {
			t.Errorf("attendees = %+v", report.Attendees)
		}
		if report.Event.ID != 1 {
			t.Errorf("report event = %+v", report.Event)
		}
	})

	t.Run("non-organizer is refused before bookings are read", func(t *testing.T) {
		lister := &fakeBookingLister{}
		svc := NewAnalytics(events, lister, &fakeUsers{})

		if _, err := svc.Report(ctx, 1, 7); !errors.Is(err, ErrForbidden) {
			t.Fatalf("error = %v, want ErrForbidden", err)
		}
		if lister.called {
			t.Fatal("booking list was queried for a refused caller")
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewAnalytics(events, &fakeBookingLister{}, &fakeUsers{})

		if _, err := svc.Report(ctx, 42, 9); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("error = %v, want ErrEventNotFound", err)
		}
	})

	t.Run("event with no bookings", func(t *testing.T) {
		svc := NewAnalytics(events, &fakeBookingLister{}, &fakeUsers{})

		report, err := svc.Report(ctx, 1, 9)
		if err != nil {
			t.Fatalf("Report: %v", err)
		}
		if report.BookingCount != 0 || len(report.Attendees) != 0 {
			t.Errorf("report = %+v, want empty", report)
		}
	})
}
