// Package cache implements the book-listing snapshot cache. There is exactly
// one cached object, the full book list, stored under a fixed key with a TTL.
// The cache is advisory: every backend failure is logged at warning level and
// treated as a miss or no-op, never returned to the caller.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"bookreview/internal/book"
)

// BookListKey is the single key holding the serialized book list.
const BookListKey = "books"

// DefaultTTL is how long a snapshot stays fresh unless configured otherwise.
const DefaultTTL = 3600 * time.Second

// Redis caches the book-list snapshot in a Redis backend. Entries are
// immutable once written and replaced wholesale on refresh, so concurrent
// repopulations resolve to last-write-wins without client-side locking.
type Redis struct {
	rdb redis.UniversalClient
	ttl time.Duration
	log logrus.FieldLogger
}

var _ book.ListCache = (*Redis)(nil)

func NewRedis(rdb redis.UniversalClient, ttl time.Duration, log logrus.FieldLogger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{rdb: rdb, ttl: ttl, log: log}
}

// GetBookList returns the cached snapshot if present and unexpired.
func (c *Redis) GetBookList(ctx context.Context) ([]book.Book, bool) {
	payload, err := c.rdb.Get(ctx, BookListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.WithError(err).Warn("cache: get book list failed, treating as miss")
		return nil, false
	}

	var books []book.Book
	if err := json.Unmarshal(payload, &books); err != nil {
		c.log.WithError(err).Warn("cache: corrupt book list entry, treating as miss")
		return nil, false
	}
	return books, true
}

// SetBookList stores a full snapshot with the configured expiration.
func (c *Redis) SetBookList(ctx context.Context, books []book.Book) {
	payload, err := json.Marshal(books)
	if err != nil {
		c.log.WithError(err).Warn("cache: marshal book list failed")
		return
	}
	if err := c.rdb.Set(ctx, BookListKey, payload, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("cache: set book list failed")
	}
}

// Invalidate drops the snapshot so the next listing refills from the store.
func (c *Redis) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, BookListKey).Err(); err != nil {
		c.log.WithError(err).Warn("cache: invalidate book list failed")
	}
}
