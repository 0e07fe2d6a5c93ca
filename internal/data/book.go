// Package data provides the book model and the in-memory store that owns
// the collection and its id sequence.
package data

import "time"

// Book represents a single book record held in the store.
type Book struct {
	ID        int       `json:"id"`        // Unique identifier assigned by the store
	Title     string    `json:"title"`     // Title of the book, trimmed, never empty
	Author    string    `json:"author"`    // Author of the book, trimmed, never empty
	CreatedAt time.Time `json:"createdAt"` // Timestamp when the record was created
	UpdatedAt time.Time `json:"updatedAt"` // Timestamp when the record was last modified
}

// CreateBookRequest holds the raw fields of a create request body.
// Both fields are `any` so validation can distinguish an absent field (nil)
// from a wrongly-typed one, and report each with its own message instead of
// failing at decode time.
type CreateBookRequest struct {
	Title  any `json:"title"`
	Author any `json:"author"`
}

// UpdateBookRequest holds the raw fields of a partial update request body.
// Fields are `any` for the same reason as CreateBookRequest; nil means
// "not provided, leave as-is".
type UpdateBookRequest struct {
	Title  any `json:"title"`
	Author any `json:"author"`
}

// UpdateBookInput carries the already-validated fields to apply in an
// update. Only non-nil fields are applied.
type UpdateBookInput struct {
	Title  *string
	Author *string
}

// DeletedBook is the snapshot of a record returned after a single delete.
type DeletedBook struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
