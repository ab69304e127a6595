package skiddle

import (
	"fmt"
	"testing"

	"github.com/iliyamo/event-discovery-booking/internal/model"
)

func sampleEvents(n int) []model.ExternalEvent {
	events := make([]model.ExternalEvent, n)
	for i := range events {
		events[i] = model.ExternalEvent{Title: fmt.Sprintf("event %d", i+1)}
	}
	return events
}

func TestPaginate(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := Paginate(sampleEvents(23), 2, 10)
		if p.Number != 2 || p.TotalPages != 3 || p.TotalItems != 23 {
			t.Fatalf("page = %+v", p)
		}
		if len(p.Items) != 10 || p.Items[0].Title != "event 11" {
			t.Fatalf("items = %d starting at %q", len(p.Items), p.Items[0].Title)
		}
		if !p.HasPrev || !p.HasNext {
			t.Errorf("HasPrev %v HasNext %v, want both true", p.HasPrev, p.HasNext)
		}
	})

	t.Run("overflowing page clamps to the last page", func(t *testing.T) {
		p := Paginate(sampleEvents(23), 999, 10)
		if p.Number != 3 {
			t.Fatalf("page number = %d, want 3", p.Number)
		}
		if len(p.Items) != 3 || p.Items[0].Title != "event 21" {
			t.Fatalf("items = %d starting at %q", len(p.Items), p.Items[0].Title)
		}
		if p.HasNext {
			t.Error("last page should not report HasNext")
		}
	})

	t.Run("page below one clamps to the first page", func(t *testing.T) {
		p := Paginate(sampleEvents(23), 0, 10)
		if p.Number != 1 || p.Items[0].Title != "event 1" {
			t.Fatalf("page = %+v", p)
		}
		if p.HasPrev {
			t.Error("first page should not report HasPrev")
		}
	})

	t.Run("empty input yields one empty page", func(t *testing.T) {
		p := Paginate(nil, 5, 10)
		if p.Number != 1 || p.TotalPages != 1 || len(p.Items) != 0 {
			t.Fatalf("page = %+v", p)
		}
		if p.HasPrev || p.HasNext {
			t.Error("empty page should report no navigation")
		}
	})

	t.Run("exact multiple has no trailing page", func(t *testing.T) {
		p := Paginate(sampleEvents(20), 2, 10)
		if p.TotalPages != 2 || p.HasNext {
			t.Fatalf("page = %+v", p)
		}
	})

	t.Run("non-positive size falls back to the default", func(t *testing.T) {
		p := Paginate(sampleEvents(15), 1, 0)
		if p.Size != DefaultPageSize || len(p.Items) != DefaultPageSize {
			t.Fatalf("page = %+v", p)
		}
	})
}
