package cache

import (
	"context"
	"sync"
	"time"

	"bookreview/internal/book"
)

// Memory is an in-process snapshot cache with the same TTL semantics as the
// Redis implementation. It backs deployments without a Redis address and the
// unit tests.
type Memory struct {
	mu        sync.RWMutex
	ttl       time.Duration
	books     []book.Book
	hasEntry  bool
	expiresAt time.Time

	now func() time.Time
}

var _ book.ListCache = (*Memory)(nil)

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, now: time.Now}
}

func (c *Memory) GetBookList(_ context.Context) ([]book.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasEntry || c.now().After(c.expiresAt) {
		return nil, false
	}
	out := make([]book.Book, len(c.books))
	copy(out, c.books)
	return out, true
}

func (c *Memory) SetBookList(_ context.Context, books []book.Book) {
	snapshot := make([]book.Book, len(books))
	copy(snapshot, books)

	c.mu.Lock()
	c.books = snapshot
	c.hasEntry = true
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()
}

func (c *Memory) Invalidate(_ context.Context) {
	c.mu.Lock()
	c.books = nil
	c.hasEntry = false
	c.mu.Unlock()
}
