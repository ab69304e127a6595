package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/iliyamo/event-discovery-booking/internal/model"
	"github.com/iliyamo/event-discovery-booking/internal/queue"
	"github.com/iliyamo/event-discovery-booking/internal/repository"
)

// EventGetter is the slice of the event repository the engagement
// service needs: existence and ownership lookups.
type EventGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Event, error)
}

// BookingStore is the booking access the engagement service needs.
// Create must enforce the unique (user, event) constraint and return
// repository.ErrDuplicate on violation.
type BookingStore interface {
	Create(ctx context.Context, userID, eventID uint64) (model.Booking, error)
	Exists(ctx context.Context, userID, eventID uint64) (bool, error)
	DeleteByUserAndEvent(ctx context.Context, userID, eventID uint64) (bool, error)
}

// ReviewStore is the review access the engagement service needs.
type ReviewStore interface {
	Create(ctx context.Context, userID, eventID uint64, rating int, comment string) (model.Review, error)
}

// SavedEventStore is the favorites access the engagement service needs.
type SavedEventStore interface {
	Create(ctx context.Context, userID, eventID uint64) (model.SavedEvent, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID uint64) (model.SavedEvent, error)
	DeleteByUserAndEvent(ctx context.Context, userID, eventID uint64) (bool, error)
}

// BookingPublisher announces successful bookings to the message
// broker.  Publishing is best effort: a broker outage must never fail
// the booking itself.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// Engagement enforces the per-user-per-event uniqueness rules for
// bookings, reviews and saves.  Correctness under concurrent requests
// comes from the storage-level unique indexes, not from the existence
// pre-checks, which only serve the common sequential case.
type Engagement struct {
	events    EventGetter
	bookings  BookingStore
	reviews   ReviewStore
	saved     SavedEventStore
	publisher BookingPublisher // may be nil when no broker is configured
}

// NewEngagement constructs the engagement service.  publisher may be
// nil; all other dependencies must be non-nil.
func NewEngagement(events EventGetter, bookings BookingStore, reviews ReviewStore, saved SavedEventStore, publisher BookingPublisher) *Engagement {
	if events == nil || bookings == nil || reviews == nil || saved == nil {
		panic("nil store passed to NewEngagement")
	}
	return &Engagement{events: events, bookings: bookings, reviews: reviews, saved: saved, publisher: publisher}
}

// Book creates a booking for (userID, eventID).  A second booking for
// the same pair fails with ErrAlreadyBooked regardless of whether it
// is detected by the pre-check or by the unique index after a race.
func (s *Engagement) Book(ctx context.Context, userID, eventID uint64) (model.Booking, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.Booking{}, ErrEventNotFound
		}
		return model.Booking{}, err
	}

	// Cheap pre-check for the common repeat-submission case.
	if exists, err := s.bookings.Exists(ctx, userID, eventID); err != nil {
		return model.Booking{}, err
	} else if exists {
		return model.Booking{}, ErrAlreadyBooked
	}

	b, err := s.bookings.Create(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Booking{}, ErrAlreadyBooked
		}
		return model.Booking{}, err
	}

	if s.publisher != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:  b.ID,
			UserID:     b.UserID,
			EventID:    b.EventID,
			EventTitle: event.Title,
			Venue:      event.Venue,
			City:       event.City,
			StartsAt:   event.Date.UTC().Format("2006-01-02 15:04:05"),
			BookedAt:   b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := s.publisher.PublishBookingCreated(ctx, ev); err != nil {
			log.Printf("engagement: publish booking.created failed: %v", err)
		}
	}
	return b, nil
}

// CancelBooking removes the booking for (userID, eventID).  Repeated
// cancellations after the first report ErrBookingNotFound.
func (s *Engagement) CancelBooking(ctx context.Context, userID, eventID uint64) error {
	deleted, err := s.bookings.DeleteByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookingNotFound
	}
	return nil
}

// SubmitReview records a review for an event the user attended.  The
// attendance check runs before the insert so that a non-attendee
// cannot learn whether a review already exists; the unique index
// remains the authoritative guard against duplicate submissions.
func (s *Engagement) SubmitReview(ctx context.Context, userID, eventID uint64, rating int, comment string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, ErrInvalidRating
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.Review{}, ErrEventNotFound
		}
		return model.Review{}, err
	}
	booked, err := s.bookings.Exists(ctx, userID, eventID)
	if err != nil {
		return model.Review{}, err
	}
	if !booked {
		return model.Review{}, ErrNotBooked
	}
	rev, err := s.reviews.Create(ctx, userID, eventID, rating, comment)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Review{}, ErrAlreadyReviewed
		}
		return model.Review{}, err
	}
	return rev, nil
}

// SaveEvent is an idempotent get-or-create on the favorites relation.
// The created flag tells callers whether a new row was written, so
// "saved now" and "already saved" do not need a second query.
func (s *Engagement) SaveEvent(ctx context.Context, userID, eventID uint64) (model.SavedEvent, bool, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.SavedEvent{}, false, ErrEventNotFound
		}
		return model.SavedEvent{}, false, err
	}
	saved, err := s.saved.Create(ctx, userID, eventID)
	if err == nil {
		return saved, true, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return model.SavedEvent{}, false, err
	}
	// Lost a race or repeat submission: surface the existing row.  The
	// re-read can still miss if a concurrent unsave removed the row in
	// between; that also surfaces here and the caller may retry.
	existing, err := s.saved.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return model.SavedEvent{}, false, fmt.Errorf("re-read saved event after duplicate insert: %w", err)
	}
	return existing, false, nil
}

// UnsaveEvent removes the favorites row and reports whether one
// existed.
func (s *Engagement) UnsaveEvent(ctx context.Context, userID, eventID uint64) (bool, error) {
	return s.saved.DeleteByUserAndEvent(ctx, userID, eventID)
}
