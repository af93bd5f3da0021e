package keyonlylocks

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrNothing(t *testing.T) {
	store := &sync.Map{}
	held, ok := AcquireLocks(store, []string{"b"})
	require.True(t, ok)

	_, ok = AcquireLocks(store, []string{"a", "b", "c"})
	assert.False(t, ok)
	_, loaded := store.Load("a")
	assert.False(t, loaded, "partial acquisition must roll back")

	ReleaseLocks(store, held)
	acquired, ok := AcquireLocks(store, []string{"c", "a"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, acquired)
}

func TestDo(t *testing.T) {
	store := &sync.Map{}
	inner := errors.New("inner")

	err := Do(store, []string{"saved:INV-1"}, func() error {
		assert.ErrorIs(t, Do(store, []string{"saved:INV-1"}, func() error { return nil }), ErrBusy)
		return inner
	})
	assert.ErrorIs(t, err, inner)

	ran := false
	require.NoError(t, Do(store, []string{"saved:INV-1"}, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestDoReleasesOnPanic(t *testing.T) {
	store := &sync.Map{}
	assert.Panics(t, func() {
		_ = Do(store, []string{"k"}, func() error { panic("boom") })
	})
	_, loaded := store.Load("k")
	assert.False(t, loaded)
}
