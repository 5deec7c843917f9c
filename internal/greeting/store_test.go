package greeting

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetNeverCreates(t *testing.T) {
	store := NewStore()

	_, ok := store.Get(42)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStoreEnsureCreatesOnce(t *testing.T) {
	store := NewStore()

	sess := store.Ensure(42, "anna")
	require.NotNil(t, sess)
	assert.Equal(t, "anna", sess.Username)

	sess.Category = CategoryBirthday
	again := store.Ensure(42, "ignored")
	assert.Same(t, sess, again)
	assert.Equal(t, CategoryBirthday, again.Category)
	assert.Equal(t, 1, store.Len())
}

func TestStoreResetWipesSelections(t *testing.T) {
	store := NewStore()

	sess := store.Ensure(42, "anna")
	sess.Category = CategoryMarch8
	sess.Name = "Мария"
	sess.Gender = GenderFemale
	sess.AwaitingName = true
	sess.State = StateParams

	fresh := store.Reset(42, "anna")
	assert.NotSame(t, sess, fresh)
	assert.Equal(t, CategoryUnset, fresh.Category)
	assert.Empty(t, fresh.Name)
	assert.False(t, fresh.AwaitingName)
	assert.Equal(t, StateIdle, fresh.State)
	assert.Equal(t, "anna", fresh.Username)
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	store := NewStore()

	stale := store.Ensure(1, "old")
	stale.LastSeen = time.Now().Add(-2 * time.Hour)
	store.Ensure(2, "fresh")

	evicted := store.Evict(time.Hour)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get(1)
	assert.False(t, ok)
	_, ok = store.Get(2)
	assert.True(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	// Touches, lookups and janitor sweeps from many goroutines must not
	// trip the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				release := store.Acquire(id)
				store.Ensure(id, "u")
				store.Get(id)
				release()
				store.Evict(time.Hour)
			}
		}(int64(i % 3))
	}
	wg.Wait()

	assert.Equal(t, 3, store.Len())
}

func TestStoreGetRefreshesLastSeen(t *testing.T) {
	store := NewStore()

	sess := store.Ensure(1, "anna")
	sess.LastSeen = time.Now().Add(-2 * time.Hour)

	_, ok := store.Get(1)
	require.True(t, ok)

	assert.Equal(t, 0, store.Evict(time.Hour))
}
