package model

import "time"

// SavedEvent marks an event a user bookmarked for later.  It shares
// the (user_id, event_id) uniqueness of Booking but has no
// attendance precondition and may be freely removed.
//
// Fields:
//  ID      – primary key identifier.
//  UserID  – user who saved the event.
//  EventID – event that was saved.
//  SavedAt – when the event was saved.
type SavedEvent struct {
	ID      uint64    `json:"id"`       // saved_events.id
	UserID  uint64    `json:"user_id"`  // saved_events.user_id
	EventID uint64    `json:"event_id"` // saved_events.event_id
	SavedAt time.Time `json:"saved_at"` // saved_events.saved_at
}
