package review

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a review is not found.
var ErrNotFound = errors.New("review not found")

// ErrBookNotFound is returned when the referenced parent book does not exist.
var ErrBookNotFound = errors.New("book not found")

// ErrInvalidRating is returned when a rating falls outside the 1..5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review represents a review owned by a book. A review never outlives its
// book: the store cascades deletes from books to reviews.
type Review struct {
	ID           int64     `json:"id"`
	BookID       int64     `json:"book_id"`
	ReviewerName *string   `json:"reviewer_name,omitempty"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput carries the fields accepted when creating a review.
type CreateInput struct {
	ReviewerName *string
	Content      string
	Rating       int
}

// UpdateInput is a sparse set of fields for a partial update.
// Nil fields keep their stored value.
type UpdateInput struct {
	ReviewerName *string
	Content      *string
	Rating       *int
	IsVerified   *bool
}
