package book

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

const bookColumns = "id, title, author, description, genre, published_year, isbn, created_at, updated_at"

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

func (r *PostgresRepo) Create(ctx context.Context, in CreateInput) (Book, error) {
	const sql = `
		INSERT INTO books (title, author, description, genre, published_year, isbn, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	row := r.db.QueryRow(timeoutCtx, sql,
		in.Title, in.Author, in.Description, in.Genre, in.PublishedYear, in.ISBN,
	)
	b, err := scanBook(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Book{}, ErrDuplicateISBN
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// List returns one page of books in insertion order plus the total count.
// A limit <= 0 becomes LIMIT NULL, which fetches the whole collection.
func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Book, int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, err
	}

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	const dataSQL = `SELECT ` + bookColumns + ` FROM books ORDER BY id ASC LIMIT $1 OFFSET $2`
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, limitArg, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// Update applies only the provided fields in a single statement, so readers
// never observe a half-applied update.
func (r *PostgresRepo) Update(ctx context.Context, id int64, in UpdateInput) (Book, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	argn := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}
	if in.Title != nil {
		addSet("title", *in.Title)
	}
	if in.Author != nil {
		addSet("author", *in.Author)
	}
	if in.Description != nil {
		addSet("description", *in.Description)
	}
	if in.Genre != nil {
		addSet("genre", *in.Genre)
	}
	if in.PublishedYear != nil {
		addSet("published_year", *in.PublishedYear)
	}
	if in.ISBN != nil {
		addSet("isbn", *in.ISBN)
	}

	sql := fmt.Sprintf(
		"UPDATE books SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argn, bookColumns,
	)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Book{}, ErrDuplicateISBN
		}
		return Book{}, err
	}
	return b, nil
}

// Delete removes a book; reviews go with it via the FK cascade.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre,
		&b.PublishedYear, &b.ISBN, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
