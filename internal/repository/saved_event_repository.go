package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// SavedEventRepo provides data access to the saved_events table, the
// per-user favorites relation.  It carries the same unique
// (user_id, event_id) index as bookings, which makes get-or-create
// race-safe: a losing insert is re-read instead of failing.
type SavedEventRepo struct {
	db *sql.DB
}

// NewSavedEventRepo returns a new SavedEventRepo bound to the given database.
func NewSavedEventRepo(db *sql.DB) *SavedEventRepo { return &SavedEventRepo{db: db} }

// Create inserts a saved-event row, translating a duplicate-key
// violation into ErrDuplicate.
func (r *SavedEventRepo) Create(ctx context.Context, userID, eventID uint64) (model.SavedEvent, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_events (user_id, event_id) VALUES (?, ?)`, userID, eventID)
	if err != nil {
		if isDuplicateKey(err) {
			return model.SavedEvent{}, ErrDuplicate
		}
		return model.SavedEvent{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.SavedEvent{}, err
	}
	var s model.SavedEvent
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, saved_at FROM saved_events WHERE id = ?`, id).
		Scan(&s.ID, &s.UserID, &s.EventID, &s.SavedAt)
	return s, err
}

// GetByUserAndEvent returns the saved-event row for (userID, eventID)
// or sql.ErrNoRows when the pair is not saved.
func (r *SavedEventRepo) GetByUserAndEvent(ctx context.Context, userID, eventID uint64) (model.SavedEvent, error) {
	var s model.SavedEvent
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, saved_at FROM saved_events
		 WHERE user_id = ? AND event_id = ? LIMIT 1`, userID, eventID).
		Scan(&s.ID, &s.UserID, &s.EventID, &s.SavedAt)
	return s, err
}

// Exists reports whether the user has saved the event.
func (r *SavedEventRepo) Exists(ctx context.Context, userID, eventID uint64) (bool, error) {
	_, err := r.GetByUserAndEvent(ctx, userID, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByUserAndEvent removes the saved-event row and reports whether
// one existed.
func (r *SavedEventRepo) DeleteByUserAndEvent(ctx context.Context, userID, eventID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_events WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EventsSavedByUser returns the events a user has saved, most recently
// saved first.
func (r *SavedEventRepo) EventsSavedByUser(ctx context.Context, userID uint64) ([]model.Event, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.venue, e.city,
			e.latitude, e.longitude, e.category_id, e.organizer_id,
			e.ticket_price_cents, e.created_at, e.updated_at
		FROM saved_events s
		JOIN events e ON e.id = s.event_id
		WHERE s.user_id = ?
		ORDER BY s.saved_at DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}
