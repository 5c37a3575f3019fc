package services

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultQuietPeriod is how long a free-text reference edit must sit idle
// before it is flushed to the record store.
const DefaultQuietPeriod = 500 * time.Millisecond

// flushFunc persists one buffered reference value. It sees a fresh
// background context because the originating request is long gone by the
// time the quiet period elapses.
type flushFunc func(ctx context.Context, txnID, reference string) error

// referenceFlusher buffers free-text external-reference edits per
// transaction and writes the latest value after a quiet period, bounding
// write volume while keeping eventual consistency. Flush attempts retry
// with exponential backoff because a record-store hiccup must not lose the
// user's keystrokes.
type referenceFlusher struct {
	quiet time.Duration
	flush flushFunc

	mu      sync.Mutex
	pending map[string]string
	timers  map[string]*time.Timer
}

func newReferenceFlusher(quiet time.Duration, flush flushFunc) *referenceFlusher {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &referenceFlusher{
		quiet:   quiet,
		flush:   flush,
		pending: make(map[string]string),
		timers:  make(map[string]*time.Timer),
	}
}

// Queue records the latest reference value for a transaction and restarts
// its quiet-period timer. Only the final value within a burst is written.
func (f *referenceFlusher) Queue(txnID, reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending[txnID] = reference
	if timer, ok := f.timers[txnID]; ok {
		timer.Reset(f.quiet)
		return
	}
	f.timers[txnID] = time.AfterFunc(f.quiet, func() {
		f.flushOne(txnID)
	})
}

func (f *referenceFlusher) flushOne(txnID string) {
	f.mu.Lock()
	reference, ok := f.pending[txnID]
	delete(f.pending, txnID)
	delete(f.timers, txnID)
	f.mu.Unlock()
	if !ok {
		return
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	_ = backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return f.flush(ctx, txnID, reference)
	}, policy)
}

// FlushAll synchronously writes every buffered value. Used at shutdown.
func (f *referenceFlusher) FlushAll() {
	f.mu.Lock()
	for _, timer := range f.timers {
		timer.Stop()
	}
	ids := make([]string, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	f.mu.Unlock()

	for _, id := range ids {
		f.flushOne(id)
	}
}
