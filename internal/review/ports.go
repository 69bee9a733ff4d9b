package review

import (
	"context"
)

// Repository defines the contract for review data storage.
type Repository interface {
	Create(ctx context.Context, bookID int64, in CreateInput) (Review, error)
	Get(ctx context.Context, id int64) (Review, error)
	ListByBook(ctx context.Context, bookID int64, offset, limit int) ([]Review, int, error)
	ListAllByBook(ctx context.Context, bookID int64) ([]Review, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Review, error)
	Delete(ctx context.Context, id int64) error
}
