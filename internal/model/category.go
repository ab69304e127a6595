package model

// Category groups events under a shared label such as "Music" or
// "Sports".  Categories are referenced by events and drive the
// recommendation queries; they are never mutated by this service.
//
// Fields:
//  ID   – primary key identifier.
//  Name – display name of the category.
type Category struct {
	ID   uint64 `json:"id"`   // categories.id
	Name string `json:"name"` // categories.name
}
