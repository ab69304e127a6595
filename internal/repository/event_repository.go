package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// EventRepo provides CRUD and query access to the events table.  All
// timestamp columns are stored in UTC.  Booking counts are always
// derived with COUNT(*) over the bookings table instead of being kept
// in a column on events, so concurrent bookings and cancellations can
// never leave a stale counter behind.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, description, date, venue, city, latitude, longitude,
	category_id, organizer_id, ticket_price_cents, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e        model.Event
		lat, lng sql.NullFloat64
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Venue, &e.City,
		&lat, &lng, &e.CategoryID, &e.OrganizerID, &e.TicketPriceCents,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, err
	}
	if lat.Valid {
		v := lat.Float64
		e.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		e.Longitude = &v
	}
	return e, nil
}

// Create inserts a new event and populates the generated ID along with
// the database-assigned timestamps on the provided struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
		(title, description, date, venue, city, latitude, longitude, category_id, organizer_id, ticket_price_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Description, e.Date.UTC().Format("2006-01-02 15:04:05"),
		e.Venue, e.City, e.Latitude, e.Longitude, e.CategoryID, e.OrganizerID, e.TicketPriceCents,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Query back the row to populate created_at/updated_at defaults.
	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = got
	return nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Update rewrites the mutable fields of an event.  Ownership must be
// verified by the caller before invoking Update.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
		SET title = ?, description = ?, date = ?, venue = ?, city = ?,
		    latitude = ?, longitude = ?, category_id = ?, ticket_price_cents = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Description, e.Date.UTC().Format("2006-01-02 15:04:05"),
		e.Venue, e.City, e.Latitude, e.Longitude, e.CategoryID, e.TicketPriceCents, e.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows can mean either a missing event or identical values;
		// confirm existence so the caller gets a clean not-found.
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an event together with its bookings, reviews and
// saves inside one transaction.  Dependent rows are deleted first so
// the operation also works against schemas without ON DELETE CASCADE.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, q := range []string{
		`DELETE FROM bookings WHERE event_id = ?`,
		`DELETE FROM reviews WHERE event_id = ?`,
		`DELETE FROM saved_events WHERE event_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// EventSearchQuery defines the optional filters for browsing events.
// Zero values mean "no filter".  Date expects a calendar day; events
// whose date falls anywhere within that day match.
type EventSearchQuery struct {
	CategoryID    uint64
	Text          string // matches title or description, case-insensitive
	Date          *time.Time
	Venue         string // substring match on venue
	MinPriceCents *uint32
	MaxPriceCents *uint32
}

// Search returns events matching the query, newest date first with ID
// as the tie-break for deterministic ordering.
func (r *EventRepo) Search(ctx context.Context, q EventSearchQuery) ([]model.Event, error) {
	where := []string{}
	args := []any{}

	if q.CategoryID != 0 {
		where = append(where, "category_id = ?")
		args = append(args, q.CategoryID)
	}
	if q.Text != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Text) + "%"
		args = append(args, pat, pat)
	}
	if q.Date != nil {
		where = append(where, "DATE(date) = ?")
		args = append(args, q.Date.UTC().Format("2006-01-02"))
	}
	if q.Venue != "" {
		where = append(where, "LOWER(venue) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Venue)+"%")
	}
	if q.MinPriceCents != nil {
		where = append(where, "ticket_price_cents >= ?")
		args = append(args, *q.MinPriceCents)
	}
	if q.MaxPriceCents != nil {
		where = append(where, "ticket_price_cents <= ?")
		args = append(args, *q.MaxPriceCents)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE `+cond+` ORDER BY date DESC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Popular returns events ranked by total booking count descending.
// Counts tie-break on event ID ascending so the ordering is stable.
func (r *EventRepo) Popular(ctx context.Context, limit int) ([]model.Event, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.venue, e.city,
			e.latitude, e.longitude, e.category_id, e.organizer_id,
			e.ticket_price_cents, e.created_at, e.updated_at
		FROM events e
		LEFT JOIN bookings b ON b.event_id = e.id
		GROUP BY e.id
		ORDER BY COUNT(b.id) DESC, e.id ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// InCategoriesExcludingUser returns events whose category is in the
// given set, skipping any event the user has already booked.  Results
// are ordered by event ID ascending and capped at limit.
func (r *EventRepo) InCategoriesExcludingUser(ctx context.Context, categoryIDs []uint64, userID uint64, limit int) ([]model.Event, error) {
	if len(categoryIDs) == 0 {
		return []model.Event{}, nil
	}
	placeholders := make([]string, 0, len(categoryIDs))
	args := make([]any, 0, len(categoryIDs)+2)
	for _, id := range categoryIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	args = append(args, userID, limit)
	q := `SELECT ` + eventColumns + ` FROM events
		WHERE category_id IN (` + strings.Join(placeholders, ",") + `)
		  AND id NOT IN (SELECT event_id FROM bookings WHERE user_id = ?)
		ORDER BY id ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// MostRecent returns events ordered by scheduled date descending with
// ID ascending as tie-break.
func (r *EventRepo) MostRecent(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListByOrganizer returns all events owned by the given user, newest
// first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organizer_id = ? ORDER BY date DESC, id ASC`, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// CalendarEntry is the minimal projection served to the calendar feed.
type CalendarEntry struct {
	Title string `json:"title"`
	Start string `json:"start"` // RFC3339
	URL   string `json:"url"`
}

// CalendarEntries lists every event as a calendar feed entry with an
// RFC3339 start time and a relative detail URL.
func (r *EventRepo) CalendarEntries(ctx context.Context) ([]CalendarEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, date FROM events ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]CalendarEntry, 0)
	for rows.Next() {
		var (
			id    uint64
			title string
			date  time.Time
		)
		if err := rows.Scan(&id, &title, &date); err != nil {
			return nil, err
		}
		entries = append(entries, CalendarEntry{
			Title: title,
			Start: date.UTC().Format(time.RFC3339),
			URL:   "/v1/events/" + strconv.FormatUint(id, 10),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
