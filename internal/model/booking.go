package model

import "time"

// Booking records that a user holds a ticket for an event.  A unique
// index on (user_id, event_id) guarantees at most one booking per
// user per event; the repository relies on that constraint rather
// than on application-level checks when two requests race.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who booked the ticket.
//  EventID   – event being booked.
//  CreatedAt – when the booking was made.
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	EventID   uint64    `json:"event_id"`   // bookings.event_id
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
}
