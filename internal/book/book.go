package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when a create or update would reuse an
// ISBN that already belongs to another book.
var ErrDuplicateISBN = errors.New("isbn already in use")

// Book represents a book entity.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   *string   `json:"description,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	ISBN          *string   `json:"isbn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateInput carries the fields accepted when creating a book.
type CreateInput struct {
	Title         string
	Author        string
	Description   *string
	Genre         *string
	PublishedYear *int
	ISBN          *string
}

// UpdateInput is a sparse set of fields for a partial update.
// Nil fields keep their stored value.
type UpdateInput struct {
	Title         *string
	Author        *string
	Description   *string
	Genre         *string
	PublishedYear *int
	ISBN          *string
}
