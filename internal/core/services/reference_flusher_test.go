package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectingFlush records flushed values, optionally failing the first n
// attempts to exercise the retry path.
type collectingFlush struct {
	mu       sync.Mutex
	flushed  map[string][]string
	failLeft int
	err      error
}

func (c *collectingFlush) flush(_ context.Context, txnID, reference string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failLeft > 0 {
		c.failLeft--
		return c.err
	}
	if c.flushed == nil {
		c.flushed = make(map[string][]string)
	}
	c.flushed[txnID] = append(c.flushed[txnID], reference)
	return nil
}

func (c *collectingFlush) values(txnID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.flushed[txnID]...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestReferenceFlusher_FlushesAfterQuietPeriod(t *testing.T) {
	sink := &collectingFlush{}
	f := newReferenceFlusher(20*time.Millisecond, sink.flush)

	f.Queue("txn-1", "JE-1")

	waitFor(t, func() bool { return len(sink.values("txn-1")) == 1 })
	assert.Equal(t, []string{"JE-1"}, sink.values("txn-1"))
}

func TestReferenceFlusher_BurstWritesOnlyFinalValue(t *testing.T) {
	sink := &collectingFlush{}
	f := newReferenceFlusher(30*time.Millisecond, sink.flush)

	// Keystroke burst: each edit lands inside the previous quiet period.
	f.Queue("txn-1", "J")
	time.Sleep(5 * time.Millisecond)
	f.Queue("txn-1", "JE")
	time.Sleep(5 * time.Millisecond)
	f.Queue("txn-1", "JE-1001")

	waitFor(t, func() bool { return len(sink.values("txn-1")) > 0 })
	assert.Equal(t, []string{"JE-1001"}, sink.values("txn-1"))
}

func TestReferenceFlusher_IndependentPerTransaction(t *testing.T) {
	sink := &collectingFlush{}
	f := newReferenceFlusher(20*time.Millisecond, sink.flush)

	f.Queue("txn-1", "JE-1")
	f.Queue("txn-2", "JE-2")

	waitFor(t, func() bool {
		return len(sink.values("txn-1")) == 1 && len(sink.values("txn-2")) == 1
	})
}

func TestReferenceFlusher_RetriesFailedFlush(t *testing.T) {
	sink := &collectingFlush{failLeft: 2, err: assert.AnError}
	f := newReferenceFlusher(10*time.Millisecond, sink.flush)

	f.Queue("txn-1", "JE-1")

	waitFor(t, func() bool { return len(sink.values("txn-1")) == 1 })
	assert.Equal(t, []string{"JE-1"}, sink.values("txn-1"))
}

func TestReferenceFlusher_FlushAll(t *testing.T) {
	sink := &collectingFlush{}
	// Long quiet period: nothing would flush on its own inside the test.
	f := newReferenceFlusher(time.Hour, sink.flush)

	f.Queue("txn-1", "JE-1")
	f.Queue("txn-2", "JE-2")
	f.FlushAll()

	require.Equal(t, []string{"JE-1"}, sink.values("txn-1"))
	require.Equal(t, []string{"JE-2"}, sink.values("txn-2"))
}
