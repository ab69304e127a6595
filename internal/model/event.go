package model

import "time"

// Event represents a bookable event created by an organizer.  Events
// belong to a category and carry venue and pricing information.  The
// number of bookings is never stored on the event row; it is derived
// by query wherever a count is needed so that it cannot drift from
// the bookings table.
//
// Fields:
//  ID               – primary key identifier.
//  Title            – event title.
//  Description      – free text description.
//  Date             – scheduled start of the event.
//  Venue            – venue name.
//  City             – city where the event takes place.
//  Latitude         – optional latitude of the venue.
//  Longitude        – optional longitude of the venue.
//  CategoryID       – category the event belongs to.
//  OrganizerID      – user who created and owns the event.
//  TicketPriceCents – ticket price in cents.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Event struct {
	ID               uint64    `json:"id"`                  // events.id
	Title            string    `json:"title"`               // events.title
	Description      string    `json:"description"`         // events.description
	Date             time.Time `json:"date"`                // events.date
	Venue            string    `json:"venue"`               // events.venue
	City             string    `json:"city"`                // events.city
	Latitude         *float64  `json:"latitude,omitempty"`  // events.latitude (nullable)
	Longitude        *float64  `json:"longitude,omitempty"` // events.longitude (nullable)
	CategoryID       uint64    `json:"category_id"`         // events.category_id
	OrganizerID      uint64    `json:"organizer_id"`        // events.organizer_id
	TicketPriceCents uint32    `json:"ticket_price_cents"`  // events.ticket_price_cents
	CreatedAt        time.Time `json:"created_at"`          // events.created_at
	UpdatedAt        time.Time `json:"updated_at"`          // events.updated_at
}
