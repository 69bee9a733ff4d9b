package book

import (
	"context"
)

const (
	// DefaultPageSize is applied when the caller does not ask for a limit.
	DefaultPageSize = 10
	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// Service provides book-related business logic. Listing reads through the
// snapshot cache; every mutation invalidates it so the next listing reflects
// the write.
type Service struct {
	repo  Repository
	cache ListCache
}

// NewService creates a new book service.
func NewService(repo Repository, cache ListCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns one page of books plus the total count. On a cache hit the
// page is sliced from the cached snapshot; on a miss the full collection is
// fetched from the store and cached before slicing.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Book, int, error) {
	offset, limit = clampPage(offset, limit)

	if snapshot, ok := s.cache.GetBookList(ctx); ok {
		return slicePage(snapshot, offset, limit), len(snapshot), nil
	}

	all, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	s.cache.SetBookList(ctx, all)
	return slicePage(all, offset, limit), len(all), nil
}

// Get returns a single book by id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create persists a new book and invalidates the listing snapshot.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return Book{}, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

// Update applies a partial update and invalidates the listing snapshot.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Book, error) {
	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return Book{}, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

// Delete removes a book (reviews cascade at the store level) and
// invalidates the listing snapshot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}

func slicePage(books []Book, offset, limit int) []Book {
	if offset >= len(books) {
		return []Book{}
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end]
}
