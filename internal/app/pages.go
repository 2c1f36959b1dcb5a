package app

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrPageNotFound = errors.New("page not found or expired")

// Registry keeps open page state between HTTP requests. Each page is used by
// one caller at a time; idle pages are dropped after ttl.
type Registry[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry[T]
}

type entry[T any] struct {
	mu   sync.Mutex
	page *T
	seen time.Time
}

func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	return &Registry[T]{ttl: ttl, now: time.Now, entries: make(map[string]*entry[T])}
}

// Put stores p and returns its id.
func (r *Registry[T]) Put(p *T) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.entries[id] = &entry[T]{page: p, seen: r.now()}
	return id
}

// With runs fn on page id while holding that page's lock.
func (r *Registry[T]) With(id string, fn func(*T) error) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok && r.expired(e) {
		delete(r.entries, id)
		ok = false
	}
	if ok {
		e.seen = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return ErrPageNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.page)
}

func (r *Registry[T]) Drop(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[T]) expired(e *entry[T]) bool {
	return r.ttl > 0 && r.now().Sub(e.seen) > r.ttl
}

func (r *Registry[T]) sweepLocked() {
	for id, e := range r.entries {
		if r.expired(e) {
			delete(r.entries, id)
		}
	}
}
