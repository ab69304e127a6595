// Package repository defines error values shared across the data access
// layer. These sentinels let the service and handler layers distinguish
// failure scenarios without inspecting driver errors. ErrForbidden marks
// an operation attempted on a resource owned by someone else, while
// ErrDuplicate reports that an insert hit a uniqueness constraint, such
// as a second booking for the same user and event.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, for example editing another organizer's
// event. Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when an insert violates a unique index.
// The bookings, reviews and saved_events tables all carry a unique
// (user_id, event_id) index; this error is the authoritative signal
// that a concurrent or repeated request lost the race.
var ErrDuplicate = errors.New("duplicate entry")

// ErrEventNotFound is returned when an event lookup matches no row.
var ErrEventNotFound = errors.New("event not found")

// isDuplicateKey reports whether err is a MySQL duplicate-key error
// (error number 1062).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
