package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	// List returns one page in insertion order plus the total count.
	// A limit <= 0 fetches the entire collection (the cache refill path).
	List(ctx context.Context, offset, limit int) ([]Book, int, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Book, error)
	Delete(ctx context.Context, id int64) error
}

// ListCache holds a single snapshot of the full book collection for the
// listing read path. Implementations are best-effort: a backend failure
// behaves like a miss and must never surface an error to the caller.
type ListCache interface {
	GetBookList(ctx context.Context) ([]Book, bool)
	SetBookList(ctx context.Context, books []Book)
	Invalidate(ctx context.Context)
}
