package review

import (
	"context"
)

const (
	// DefaultPageSize is applied when the caller does not ask for a limit.
	DefaultPageSize = 10
	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// Service provides review-related business logic. The review path is never
// cached; everything goes straight to the store.
type Service struct {
	repo Repository
}

// NewService creates a new review service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the rating range and persists a review owned by bookID.
func (s *Service) Create(ctx context.Context, bookID int64, in CreateInput) (Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return s.repo.Create(ctx, bookID, in)
}

// Get returns a single review by id.
func (s *Service) Get(ctx context.Context, id int64) (Review, error) {
	return s.repo.Get(ctx, id)
}

// ListByBook returns one page of a book's reviews plus the count scoped to
// that book. Fails with ErrBookNotFound when the book is absent.
func (s *Service) ListByBook(ctx context.Context, bookID int64, offset, limit int) ([]Review, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return s.repo.ListByBook(ctx, bookID, offset, limit)
}

// ListAllByBook returns every review of a book in insertion order. Used to
// embed reviews in the single-book view.
func (s *Service) ListAllByBook(ctx context.Context, bookID int64) ([]Review, error) {
	return s.repo.ListAllByBook(ctx, bookID)
}

// Update applies a partial update. A supplied rating is range-checked
// before it reaches the store.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Review, error) {
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return Review{}, ErrInvalidRating
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
