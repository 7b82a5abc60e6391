// Package feeds holds the in-process resource stores behind the read
// endpoints that poll or subscribe: each Feed caches the last good result of
// a fetch, exposes a loading flag, and discards results of superseded
// fetches so overlapping refreshes can never roll the data backwards.
package feeds

import (
	"context"
	"sync"

	"lifewithchrist/community/internal/logging"
)

// FetchFunc loads the current remote state of the resource.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// NoticeFunc receives fetch failures. The feed keeps its last good data when
// a refresh fails; the notice is the only signal the failure produces.
type NoticeFunc func(err error)

// Feed is a concurrency-safe store for one list resource.
//
// Every Refresh is stamped with a sequence number taken under the lock. When
// a fetch completes, its result is applied only if no later Refresh has
// started in the meantime; otherwise the completion is dropped, data and
// error state untouched.
type Feed[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	seq     uint64
	closed  bool

	fetch  FetchFunc[T]
	notice NoticeFunc
}

func New[T any](fetch FetchFunc[T], notice NoticeFunc) *Feed[T] {
	return &Feed[T]{
		fetch:  fetch,
		notice: notice,
	}
}

// Refresh runs one fetch cycle: mark loading, fetch, apply-or-discard.
// It blocks until the fetch returns; callers wanting overlap run it from
// their own goroutines. A failed fetch keeps the previous items.
func (f *Feed[T]) Refresh(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.seq++
	mySeq := f.seq
	f.loading = true
	f.mu.Unlock()

	items, err := f.fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.seq != mySeq {
		// A newer refresh owns the feed now; this result is stale.
		return
	}

	f.loading = false
	if err != nil {
		logging.Warn("Feed refresh failed, keeping previous data", "error", err.Error())
		if f.notice != nil {
			f.notice(err)
		}
		return
	}
	f.items = items
}

// Snapshot returns a copy of the current items and the loading flag.
func (f *Feed[T]) Snapshot() ([]T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]T, len(f.items))
	copy(out, f.items)
	return out, f.loading
}

// Loading reports whether a refresh is in flight.
func (f *Feed[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Prepend pushes a pushed-in item to the front without a fetch, for realtime
// inserts arriving over a subscription.
func (f *Feed[T]) Prepend(item T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.items = append([]T{item}, f.items...)
}

// Replace swaps out the first item matching the predicate. Returns false when
// nothing matched.
func (f *Feed[T]) Replace(match func(T) bool, item T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if match(f.items[i]) {
			f.items[i] = item
			return true
		}
	}
	return false
}

// Close marks the feed dead. In-flight fetch completions and later mutations
// are discarded.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.loading = false
}
