// Package queue defines message payloads exchanged over the message
// broker together with the publisher and the background consumer.
package queue

// BookingCreatedEvent is published when a ticket booking succeeds.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	EventID    uint64 `json:"event_id"`
	EventTitle string `json:"event_title"`
	Venue      string `json:"venue"`
	City       string `json:"city"`
	StartsAt   string `json:"starts_at"`
	BookedAt   string `json:"booked_at"`
}
