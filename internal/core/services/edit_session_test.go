package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditSessionTracker_RunsImmediatelyWhenIdle(t *testing.T) {
	tracker := newEditSessionTracker()

	ran := false
	tracker.DeferRefresh(func() { ran = true })

	assert.True(t, ran)
}

func TestEditSessionTracker_QueuesWhileEditing(t *testing.T) {
	tracker := newEditSessionTracker()
	tracker.Begin("txn-1")

	ran := 0
	tracker.DeferRefresh(func() { ran++ })
	tracker.DeferRefresh(func() { ran++ })
	assert.Equal(t, 0, ran, "refreshes must queue while a session is open")

	tracker.End("txn-1")
	assert.Equal(t, 2, ran, "queued refreshes drain when the last session ends")
}

func TestEditSessionTracker_DrainsOnlyAfterLastSession(t *testing.T) {
	tracker := newEditSessionTracker()
	tracker.Begin("txn-1")
	tracker.Begin("txn-2")

	ran := false
	tracker.DeferRefresh(func() { ran = true })

	tracker.End("txn-1")
	assert.False(t, ran, "another session is still open")

	tracker.End("txn-2")
	assert.True(t, ran)
}

func TestEditSessionTracker_NestedSessionsSameTransaction(t *testing.T) {
	tracker := newEditSessionTracker()
	tracker.Begin("txn-1")
	tracker.Begin("txn-1")

	ran := false
	tracker.DeferRefresh(func() { ran = true })

	tracker.End("txn-1")
	assert.False(t, ran)
	assert.True(t, tracker.Editing("txn-1"))

	tracker.End("txn-1")
	assert.True(t, ran)
	assert.False(t, tracker.Editing("txn-1"))
}

func TestEditSessionTracker_UnbalancedEndIsHarmless(t *testing.T) {
	tracker := newEditSessionTracker()
	tracker.End("never-opened")

	ran := false
	tracker.DeferRefresh(func() { ran = true })
	assert.True(t, ran)
}
