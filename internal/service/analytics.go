package service

import (
	"context"
	"errors"

	"github.com/iliyamo/event-discovery-booking/internal/model"
	"github.com/iliyamo/event-discovery-booking/internal/repository"
)

// BookingLister lists an event's bookings for the attendance report.
type BookingLister interface {
	ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error)
}

// UserBatchGetter resolves attendee identities for a report.
type UserBatchGetter interface {
	GetByIDs(ctx context.Context, ids []uint64) ([]model.User, error)
}

// Attendee pairs a booking with the user who made it.
type Attendee struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AttendanceReport summarizes an event's bookings for its organizer.
type AttendanceReport struct {
	Event        model.Event     `json:"event"`
	BookingCount int             `json:"booking_count"`
	Bookings     []model.Booking `json:"bookings"`
	Attendees    []Attendee      `json:"attendees"`
}

// Analytics produces organizer-only booking summaries.  Authorization
// is a single owner-identity comparison, performed before any booking
// data is queried so a refused caller never triggers the reads.
type Analytics struct {
	events   EventGetter
	bookings BookingLister
	users    UserBatchGetter
}

// NewAnalytics constructs the analytics reader.
func NewAnalytics(events EventGetter, bookings BookingLister, users UserBatchGetter) *Analytics {
	if events == nil || bookings == nil || users == nil {
		panic("nil store passed to NewAnalytics")
	}
	return &Analytics{events: events, bookings: bookings, users: users}
}

// Report returns the booking list and attendee identities for an
// event.  Callers other than the event's organizer get ErrForbidden
// and no data.
func (s *Analytics) Report(ctx context.Context, eventID, requestingUserID uint64) (AttendanceReport, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return AttendanceReport{}, ErrEventNotFound
		}
		return AttendanceReport{}, err
	}
	if event.OrganizerID != requestingUserID {
		return AttendanceReport{}, ErrForbidden
	}

	bookings, err := s.bookings.ListByEvent(ctx, eventID)
	if err != nil {
		return AttendanceReport{}, err
	}
	ids := make([]uint64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return AttendanceReport{}, err
	}
	byID := make(map[uint64]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	attendees := make([]Attendee, 0, len(bookings))
	for _, b := range bookings {
		u, ok := byID[b.UserID]
		if !ok {
			continue
		}
		attendees = append(attendees, Attendee{UserID: u.ID, Username: u.Username, Email: u.Email})
	}
	return AttendanceReport{
		Event:        event,
		BookingCount: len(bookings),
		Bookings:     bookings,
		Attendees:    attendees,
	}, nil
}
