package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  The table
// carries a unique (user_id, event_id) index; Create relies on that
// constraint as the authoritative guard against double booking and
// translates the resulting duplicate-key error into ErrDuplicate.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking for (userID, eventID) and returns the full
// row.  A duplicate-key violation yields ErrDuplicate; any existence
// pre-check performed by the caller is an optimization only, two
// concurrent requests both passing it will still resolve here.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID uint64) (model.Booking, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, event_id) VALUES (?, ?)`, userID, eventID)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Booking{}, ErrDuplicate
		}
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	var b model.Booking
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, created_at FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.UserID, &b.EventID, &b.CreatedAt)
	return b, err
}

// Exists reports whether a booking for (userID, eventID) is present.
func (r *BookingRepo) Exists(ctx context.Context, userID, eventID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND event_id = ?`, userID, eventID).Scan(&n)
	return n > 0, err
}

// DeleteByUserAndEvent removes the booking for (userID, eventID) and
// reports whether a row was actually deleted.  Repeated calls after
// the first report false rather than an error.
func (r *BookingRepo) DeleteByUserAndEvent(ctx context.Context, userID, eventID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByEvent returns all bookings for an event, newest first.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, event_id, created_at FROM bookings
		 WHERE event_id = ? ORDER BY created_at DESC, id DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.EventID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByEvent returns the number of bookings for an event, derived
// at read time rather than cached on the event row.
func (r *BookingRepo) CountByEvent(ctx context.Context, eventID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

// EventsBookedByUser returns the events a user holds bookings for,
// most recently booked first.
func (r *BookingRepo) EventsBookedByUser(ctx context.Context, userID uint64) ([]model.Event, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.venue, e.city,
			e.latitude, e.longitude, e.category_id, e.organizer_id,
			e.ticket_price_cents, e.created_at, e.updated_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// CategoriesForUser returns the distinct category IDs appearing in a
// user's bookings.  Order is unspecified; callers treat the result as
// a set.
func (r *BookingRepo) CategoriesForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT e.category_id
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 WHERE b.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
