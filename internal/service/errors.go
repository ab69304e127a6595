// Package service implements the booking and engagement rules on top
// of the repository layer: at-most-one booking, review and save per
// (user, event) pair, the recommendation queries derived from booking
// history, and the organizer-only attendance report.
package service

import "errors"

var (
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyBooked is returned when the user already holds a booking
	// for the event, whether detected by the pre-check or by the unique
	// index losing a concurrent race.
	ErrAlreadyBooked = errors.New("already booked")

	// ErrBookingNotFound is returned by cancellation when no booking
	// exists for the (user, event) pair.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotBooked is returned when a review is submitted by a user who
	// never booked the event.
	ErrNotBooked = errors.New("not booked")

	// ErrAlreadyReviewed is returned when the user already reviewed the
	// event.
	ErrAlreadyReviewed = errors.New("already reviewed")

	// ErrInvalidRating is returned for ratings outside the range 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrForbidden is returned when the caller is not the organizer of
	// the event they are operating on.
	ErrForbidden = errors.New("forbidden")
)
