package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = "id, book_id, reviewer_name, content, rating, is_verified, created_at, updated_at"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts a review for bookID. A foreign key violation means the
// parent book is gone and maps to ErrBookNotFound.
func (r *PostgresRepo) Create(ctx context.Context, bookID int64, in CreateInput) (Review, error) {
	const sql = `
		INSERT INTO reviews (book_id, reviewer_name, content, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + reviewColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rev, err := scanReview(r.db.QueryRow(timeoutCtx, sql, bookID, in.ReviewerName, in.Content, in.Rating))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return Review{}, ErrBookNotFound
			case "23514":
				return Review{}, ErrInvalidRating
			}
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rev, err := scanReview(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}

// ListByBook verifies the parent book exists, then returns one page of its
// reviews in insertion order plus the total count scoped to the book.
func (r *PostgresRepo) ListByBook(ctx context.Context, bookID int64, offset, limit int) ([]Review, int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrBookNotFound
	}

	var total int
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	if err := r.db.QueryRow(timeoutCtx2, `SELECT COUNT(*) FROM reviews WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`
	timeoutCtx3, cancel3 := r.withTimeout(ctx)
	defer cancel3()
	rows, err := r.db.Query(timeoutCtx3, dataSQL, bookID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListAllByBook returns every review of a book. Callers fetch the book first,
// so no existence check happens here.
func (r *PostgresRepo) ListAllByBook(ctx context.Context, bookID int64) ([]Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE book_id = $1 ORDER BY id ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

// Update applies only the provided fields in a single statement.
func (r *PostgresRepo) Update(ctx context.Context, id int64, in UpdateInput) (Review, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	argn := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}
	if in.ReviewerName != nil {
		addSet("reviewer_name", *in.ReviewerName)
	}
	if in.Content != nil {
		addSet("content", *in.Content)
	}
	if in.Rating != nil {
		addSet("rating", *in.Rating)
	}
	if in.IsVerified != nil {
		addSet("is_verified", *in.IsVerified)
	}

	sql := fmt.Sprintf(
		"UPDATE reviews SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argn, reviewColumns,
	)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rev, err := scanReview(r.db.QueryRow(timeoutCtx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return Review{}, ErrInvalidRating
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReview(row pgx.Row) (Review, error) {
	var rev Review
	err := row.Scan(
		&rev.ID, &rev.BookID, &rev.ReviewerName, &rev.Content,
		&rev.Rating, &rev.IsVerified, &rev.CreatedAt, &rev.UpdatedAt,
	)
	return rev, err
}

func collectReviews(rows pgx.Rows) ([]Review, error) {
	out := []Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
