package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/event-discovery-booking/internal/model"
	"github.com/iliyamo/event-discovery-booking/internal/queue"
	"github.com/iliyamo/event-discovery-booking/internal/repository"
)

type pair struct{ user, event uint64 }

type fakeEvents struct {
	events map[uint64]model.Event
}

func (f *fakeEvents) GetByID(_ context.Context, id uint64) (model.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, nil
}

type fakeBookings struct {
	rows   map[pair]model.Booking
	nextID uint64
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{rows: make(map[pair]model.Booking)}
}

func (f *fakeBookings) Create(_ context.Context, userID, eventID uint64) (model.Booking, error) {
	k := pair{userID, eventID}
	if _, ok := f.rows[k]; ok {
		return model.Booking{}, repository.ErrDuplicate
	}
	f.nextID++
	b := model.Booking{ID: f.nextID, UserID: userID, EventID: eventID, CreatedAt: time.Now()}
	f.rows[k] = b
	return b, nil
}

func (f *fakeBookings) Exists(_ context.Context, userID, eventID uint64) (bool, error) {
	_, ok := f.rows[pair{userID, eventID}]
	return ok, nil
}

func (f *fakeBookings) DeleteByUserAndEvent(_ context.Context, userID, eventID uint64) (bool, error) {
	k := pair{userID, eventID}
	if _, ok := f.rows[k]; !ok {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

type fakeReviews struct {
	rows   map[pair]model.Review
	nextID uint64
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{rows: make(map[pair]model.Review)}
}

func (f *fakeReviews) Create(_ context.Context, userID, eventID uint64, rating int, comment string) (model.Review, error) {
	k := pair{userID, eventID}
	if _, ok := f.rows[k]; ok {
		return model.Review{}, repository.ErrDuplicate
	}
	f.nextID++
	rev := model.Review{ID: f.nextID, UserID: userID, EventID: eventID, Rating: rating, Comment: comment}
	f.rows[k] = rev
	return rev, nil
}

type fakeSaved struct {
	rows   map[pair]model.SavedEvent
	nextID uint64
}

func newFakeSaved() *fakeSaved {
	return &fakeSaved{rows: make(map[pair]model.SavedEvent)}
}

func (f *fakeSaved) Create(_ context.Context, userID, eventID uint64) (model.SavedEvent, error) {
	k := pair{userID, eventID}
	if _, ok := f.rows[k]; ok {
		return model.SavedEvent{}, repository.ErrDuplicate
	}
	f.nextID++
	s := model.SavedEvent{ID: f.nextID, UserID: userID, EventID: eventID}
	f.rows[k] = s
	return s, nil
}

func (f *fakeSaved) GetByUserAndEvent(_ context.Context, userID, eventID uint64) (model.SavedEvent, error) {
	s, ok := f.rows[pair{userID, eventID}]
	if !ok {
		return model.SavedEvent{}, errors.New("saved event not found")
	}
	return s, nil
}

func (f *fakeSaved) DeleteByUserAndEvent(_ context.Context, userID, eventID uint64) (bool, error) {
	k := pair{userID, eventID}
	if _, ok := f.rows[k]; !ok {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

type fakePublisher struct {
	published []queue.BookingCreatedEvent
	fail      bool
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, ev)
	return nil
}

func testEvents() *fakeEvents {
	return &fakeEvents{events: map[uint64]model.Event{
		1: {ID: 1, Title: "Jazz Night", Venue: "Blue Room", City: "Leeds", CategoryID: 2, OrganizerID: 9, Date: time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC)},
	}}
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a booking and publishes it", func(t *testing.T) {
		bookings := newFakeBookings()
		pub := &fakePublisher{}
		svc := NewEngagement(testEvents(), bookings, newFakeReviews(), newFakeSaved(), pub)

		b, err := svc.Book(ctx, 7, 1)
		if err != nil {
			t.Fatalf("Book: %v", err)
		}
		if b.UserID != 7 || b.EventID != 1 {
			t.Fatalf("booking = %+v, want user 7 event 1", b)
		}
		if len(pub.published) != 1 {
			t.Fatalf("published %d messages, want 1", len(pub.published))
		}
		if pub.published[0].EventTitle != "Jazz Night" {
			t.Errorf("published title = %q", pub.published[0].EventTitle)
		}
	})

	t.Run("second booking for the same event conflicts", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("first Book: %v", err)
		}
		if _, err := svc.Book(ctx, 7, 1); !errors.Is(err, ErrAlreadyBooked) {
			t.Fatalf("second Book error = %v, want ErrAlreadyBooked", err)
		}
	})

	t.Run("different users may book the same event", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("user 7: %v", err)
		}
		if _, err := svc.Book(ctx, 8, 1); err != nil {
			t.Fatalf("user 8: %v", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.Book(ctx, 7, 42); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("error = %v, want ErrEventNotFound", err)
		}
	})

	t.Run("broker failure does not fail the booking", func(t *testing.T) {
		pub := &fakePublisher{fail: true}
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), pub)

		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("Book: %v", err)
		}
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel then rebook succeeds", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("Book: %v", err)
		}
		if err := svc.CancelBooking(ctx, 7, 1); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("rebook after cancel: %v", err)
		}
	})

	t.Run("cancel without a booking", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if err := svc.CancelBooking(ctx, 7, 1); !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("error = %v, want ErrBookingNotFound", err)
		}
	})
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("attendee reviews once", func(t *testing.T) {
		bookings := newFakeBookings()
		svc := NewEngagement(testEvents(), bookings, newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.Book(ctx, 7, 1); err != nil {
			t.Fatalf("Book: %v", err)
		}
		rev, err := svc.SubmitReview(ctx, 7, 1, 4, "great sound")
		if err != nil {
			t.Fatalf("SubmitReview: %v", err)
		}
		if rev.Rating != 4 || rev.Comment != "great sound" {
			t.Fatalf("review = %+v", rev)
		}
		if _, err := svc.SubmitReview(ctx, 7, 1, 5, "changed my mind"); !errors.Is(err, ErrAlreadyReviewed) {
			t.Fatalf("second review error = %v, want ErrAlreadyReviewed", err)
		}
	})

	t.Run("non-attendee is rejected", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.SubmitReview(ctx, 7, 1, 4, ""); !errors.Is(err, ErrNotBooked) {
			t.Fatalf("error = %v, want ErrNotBooked", err)
		}
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		for _, rating := range []int{0, -1, 6} {
			if _, err := svc.SubmitReview(ctx, 7, 1, rating, ""); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("rating %d: error = %v, want ErrInvalidRating", rating, err)
			}
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, err := svc.SubmitReview(ctx, 7, 42, 3, ""); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("error = %v, want ErrEventNotFound", err)
		}
	})
}

func TestSaveEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("save is idempotent", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		first, created, err := svc.SaveEvent(ctx, 7, 1)
		if err != nil {
			t.Fatalf("first SaveEvent: %v", err)
		}
		if !created {
			t.Fatal("first save should report created")
		}
		second, created, err := svc.SaveEvent(ctx, 7, 1)
		if err != nil {
			t.Fatalf("second SaveEvent: %v", err)
		}
		if created {
			t.Fatal("second save should not report created")
		}
		if second.ID != first.ID {
			t.Fatalf("second save returned ID %d, want existing %d", second.ID, first.ID)
		}
	})

	t.Run("unsave reports whether a row existed", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, _, err := svc.SaveEvent(ctx, 7, 1); err != nil {
			t.Fatalf("SaveEvent: %v", err)
		}
		removed, err := svc.UnsaveEvent(ctx, 7, 1)
		if err != nil || !removed {
			t.Fatalf("first unsave = (%v, %v), want (true, nil)", removed, err)
		}
		removed, err = svc.UnsaveEvent(ctx, 7, 1)
		if err != nil || removed {
			t.Fatalf("second unsave = (%v, %v), want (false, nil)", removed, err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), newFakeSaved(), nil)

		if _, _, err := svc.SaveEvent(ctx, 7, 42); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("error = %v, want ErrEventNotFound", err)
		}
	})

	t.Run("row vanishing between insert and re-read surfaces the store error", func(t *testing.T) {
		svc := NewEngagement(testEvents(), newFakeBookings(), newFakeReviews(), &vanishingSaved{}, nil)

		_, created, err := svc.SaveEvent(ctx, 7, 1)
		if created {
			t.Fatal("created must be false when no row could be returned")
		}
		if !errors.Is(err, sql.ErrNoRows) {
			t.Fatalf("error = %v, want wrapped sql.ErrNoRows", err)
		}
	})
}

// vanishingSaved simulates a concurrent unsave: the insert reports a
// duplicate but the row is gone by the time it is re-read.
type vanishingSaved struct{}

func (*vanishingSaved) Create(context.Context, uint64, uint64) (model.SavedEvent, error) {
	return model.SavedEvent{}, repository.ErrDuplicate
}

func (*vanishingSaved) GetByUserAndEvent(context.Context, uint64, uint64) (model.SavedEvent, error) {
	return model.SavedEvent{}, sql.ErrNoRows
}

func (*vanishingSaved) DeleteByUserAndEvent(context.Context, uint64, uint64) (bool, error) {
	return false, nil
}
