package model

// ExternalEvent is a transient projection of an event record fetched
// from the Skiddle feed.  It exists only for display and is never
// written to local storage.
//
// Fields:
//  Title     – event name as reported by the provider.
//  StartDate – local date/time string as reported by the provider.
//  Venue     – venue name.
//  City      – town or city name.
//  URL       – provider detail page link.
type ExternalEvent struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	URL       string `json:"url"`
}
