package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// ReviewRepo provides data access to the reviews table.  Reviews share
// the unique (user_id, event_id) index shape with bookings; Create
// translates a duplicate-key violation into ErrDuplicate so a repeated
// or racing submission is reported as a conflict, not a crash.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns the stored row.  The attendance
// precondition (an existing booking) is checked by the service layer
// before this insert is attempted.
func (r *ReviewRepo) Create(ctx context.Context, userID, eventID uint64, rating int, comment string) (model.Review, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, event_id, rating, comment) VALUES (?, ?, ?, ?)`,
		userID, eventID, rating, comment)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Review{}, ErrDuplicate
		}
		return model.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Review{}, err
	}
	var rev model.Review
	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, rating, comment, created_at FROM reviews WHERE id = ?`, id).
		Scan(&rev.ID, &rev.UserID, &rev.EventID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	return rev, err
}

// ExistsByUserAndEvent reports whether the user already reviewed the event.
func (r *ReviewRepo) ExistsByUserAndEvent(ctx context.Context, userID, eventID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND event_id = ?`, userID, eventID).Scan(&n)
	return n > 0, err
}

// ListByEvent returns all reviews for an event, newest first.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, event_id, rating, comment, created_at
		 FROM reviews WHERE event_id = ? ORDER BY created_at DESC, id DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.EventID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating returns the mean rating for an event, or nil when the
// event has no reviews yet.
func (r *ReviewRepo) AverageRating(ctx context.Context, eventID uint64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM reviews WHERE event_id = ?`, eventID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}
