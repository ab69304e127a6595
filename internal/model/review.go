package model

import "time"

// Review is a rating and optional comment left by a user for an
// event they booked.  A unique index on (user_id, event_id) allows
// at most one review per user per event.  Reviews are written once
// and have no edit or delete path.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – author of the review.
//  EventID   – event being reviewed.
//  Rating    – integer rating between 1 and 5 inclusive.
//  Comment   – optional free text comment.
//  CreatedAt – when the review was submitted.
type Review struct {
	ID        uint64    `json:"id"`         // reviews.id
	UserID    uint64    `json:"user_id"`    // reviews.user_id
	EventID   uint64    `json:"event_id"`   // reviews.event_id
	Rating    int       `json:"rating"`     // reviews.rating
	Comment   string    `json:"comment"`    // reviews.comment
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
}
