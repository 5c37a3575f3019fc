package services

import "sync"

// editSessionTracker serializes background refreshes against interactive
// edits. While any edit session is open, refresh work handed to
// DeferRefresh is queued rather than dropped, and the queue drains as soon
// as the last session closes. Sessions are counted per transaction id so
// unbalanced Begin/End calls from separate views don't cancel each other.
type editSessionTracker struct {
	mu      sync.Mutex
	open    map[string]int
	pending []func()
}

func newEditSessionTracker() *editSessionTracker {
	return &editSessionTracker{open: make(map[string]int)}
}

// Begin opens an edit session for a transaction.
func (t *editSessionTracker) Begin(txnID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open[txnID]++
}

// End closes an edit session. Closing the last open session runs every
// queued refresh, in arrival order.
func (t *editSessionTracker) End(txnID string) {
	t.mu.Lock()
	if n, ok := t.open[txnID]; ok {
		if n <= 1 {
			delete(t.open, txnID)
		} else {
			t.open[txnID] = n - 1
		}
	}
	var drained []func()
	if len(t.open) == 0 && len(t.pending) > 0 {
		drained = t.pending
		t.pending = nil
	}
	t.mu.Unlock()

	for _, fn := range drained {
		fn()
	}
}

// DeferRefresh runs fn immediately when no edit session is open; otherwise
// it queues fn to run when the last session ends.
func (t *editSessionTracker) DeferRefresh(fn func()) {
	t.mu.Lock()
	if len(t.open) > 0 {
		t.pending = append(t.pending, fn)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	fn()
}

// Editing reports whether any session is open for the transaction.
func (t *editSessionTracker) Editing(txnID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open[txnID] > 0
}
