package service

import (
	"context"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

// defaultRecommendLimit caps recommendation and popularity lists when
// the caller does not specify a positive limit.
const defaultRecommendLimit = 5

// EventCatalog is the slice of the event repository the recommender
// reads from.  All three queries must apply deterministic tie-breaks
// (event ID ascending) so results are reproducible.
type EventCatalog interface {
	Popular(ctx context.Context, limit int) ([]model.Event, error)
	InCategoriesExcludingUser(ctx context.Context, categoryIDs []uint64, userID uint64, limit int) ([]model.Event, error)
	MostRecent(ctx context.Context, limit int) ([]model.Event, error)
}

// BookingHistory exposes the distinct categories of a user's bookings.
type BookingHistory interface {
	CategoriesForUser(ctx context.Context, userID uint64) ([]uint64, error)
}

// Recommender derives ranked event lists from current booking state.
// It keeps no cache and no incremental state; every call recomputes
// from the store.
type Recommender struct {
	catalog EventCatalog
	history BookingHistory
}

// NewRecommender constructs the recommendation service.
func NewRecommender(catalog EventCatalog, history BookingHistory) *Recommender {
	if catalog == nil || history == nil {
		panic("nil store passed to NewRecommender")
	}
	return &Recommender{catalog: catalog, history: history}
}

// Popular ranks all events by total booking count descending,
// independent of any particular user.
func (s *Recommender) Popular(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	return s.catalog.Popular(ctx, limit)
}

// RecommendedFor returns events the user has not booked, biased toward
// the categories of their past bookings.  A user with no booking
// history falls back to the most recently scheduled events overall.
func (s *Recommender) RecommendedFor(ctx context.Context, userID uint64, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	categories, err := s.history.CategoriesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return s.catalog.MostRecent(ctx, limit)
	}
	return s.catalog.InCategoriesExcludingUser(ctx, categories, userID, limit)
}
