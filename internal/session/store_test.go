package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(10)

	sess, err := store.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, StepWelcome, sess.Step)
	assert.Equal(t, StatusIdle, sess.Status)
	assert.NotNil(t, sess.Form)
	assert.Empty(t, sess.Form.Owners)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewStore(10)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(10)

	sess, err := store.Create()
	require.NoError(t, err)

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	store.Delete(sess.ID)
}

func TestStore_MaxSessions(t *testing.T) {
	store := NewStore(2)

	_, err := store.Create()
	require.NoError(t, err)
	_, err = store.Create()
	require.NoError(t, err)

	_, err = store.Create()
	assert.ErrorIs(t, err, ErrStoreFull)
	assert.Equal(t, 2, store.Count())
}

func TestStore_Mutate(t *testing.T) {
	store := NewStore(10)
	sess, err := store.Create()
	require.NoError(t, err)
	created := sess.UpdatedAt

	got, err := store.Mutate(sess.ID, func(s *Session) error {
		s.Step = StepOwners
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StepOwners, got.Step)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestStore_MutateError(t *testing.T) {
	store := NewStore(10)
	sess, err := store.Create()
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Mutate(sess.ID, func(s *Session) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Mutate("missing", func(s *Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_View(t *testing.T) {
	store := NewStore(10)
	sess, err := store.Create()
	require.NoError(t, err)

	var seen string
	err = store.View(sess.ID, func(s *Session) {
		seen = s.ID
	})
	require.NoError(t, err)
	assert.Equal(t, sess.ID, seen)

	assert.ErrorIs(t, store.View("missing", func(s *Session) {}), ErrNotFound)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	store := NewStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
}

func TestSteps_NextPrev(t *testing.T) {
	next, ok := Next(StepWelcome)
	require.True(t, ok)
	assert.Equal(t, StepOwners, next)

	_, ok = Next(StepReview)
	assert.False(t, ok)

	prev, ok := Prev(StepReview)
	require.True(t, ok)
	assert.Equal(t, StepAssignments, prev)

	_, ok = Prev(StepWelcome)
	assert.False(t, ok)

	_, ok = Next(Step("bogus"))
	assert.False(t, ok)
}
