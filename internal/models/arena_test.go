package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_UpdateCommits(t *testing.T) {
	arena := NewArena()

	err := arena.Update(func(tx *Txn) error {
		tx.Put("k1", []byte("v1"))
		tx.Put("k2", []byte("v2"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, arena.Len())

	_ = arena.View(func(tx *Txn) error {
		val, ok := tx.Get("k1")
		assert.True(t, ok)
		assert.Equal(t, []byte("v1"), val)
		return nil
	})
}

func TestArena_UpdateAbortsOnError(t *testing.T) {
	arena := NewArena()
	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Put("keep", []byte("old"))
		return nil
	}))

	boom := errors.New("boom")
	err := arena.Update(func(tx *Txn) error {
		tx.Put("keep", []byte("new"))
		tx.Put("extra", []byte("x"))
		tx.Delete("keep")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Nothing from the failed transaction landed.
	assert.Equal(t, 1, arena.Len())
	_ = arena.View(func(tx *Txn) error {
		val, ok := tx.Get("keep")
		assert.True(t, ok)
		assert.Equal(t, []byte("old"), val)
		assert.False(t, tx.Has("extra"))
		return nil
	})
}

func TestTxn_ReadsSeeStagedWrites(t *testing.T) {
	arena := NewArena()
	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Put("a", []byte("committed"))
		return nil
	}))

	require.NoError(t, arena.Update(func(tx *Txn) error {
		val, ok := tx.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("committed"), val)

		tx.Put("a", []byte("staged"))
		val, ok = tx.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("staged"), val)

		tx.Delete("a")
		assert.False(t, tx.Has("a"))

		// Put after Delete revives the key.
		tx.Put("a", []byte("revived"))
		assert.True(t, tx.Has("a"))
		return nil
	}))

	_ = arena.View(func(tx *Txn) error {
		val, _ := tx.Get("a")
		assert.Equal(t, []byte("revived"), val)
		return nil
	})
}

func TestTxn_DeleteCommits(t *testing.T) {
	arena := NewArena()
	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Put("gone", []byte("x"))
		return nil
	}))

	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Delete("gone")
		return nil
	}))
	assert.Equal(t, 0, arena.Len())
}

func TestTxn_GetReturnsCopy(t *testing.T) {
	arena := NewArena()
	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Put("k", []byte("abc"))
		return nil
	}))

	_ = arena.View(func(tx *Txn) error {
		val, _ := tx.Get("k")
		val[0] = 'X'
		return nil
	})

	_ = arena.View(func(tx *Txn) error {
		val, _ := tx.Get("k")
		assert.Equal(t, []byte("abc"), val)
		return nil
	})
}

func TestArena_ViewDiscardsWrites(t *testing.T) {
	arena := NewArena()

	_ = arena.View(func(tx *Txn) error {
		tx.Put("phantom", []byte("x"))
		return nil
	})
	assert.Equal(t, 0, arena.Len())
}

func TestArena_SnapshotRestore(t *testing.T) {
	arena := NewArena()
	require.NoError(t, arena.Update(func(tx *Txn) error {
		tx.Put("k1", []byte("v1"))
		tx.Put("k2", []byte("v2"))
		return nil
	}))

	snap := arena.Snapshot()
	assert.Len(t, snap, 2)

	// Snapshot holds copies, not aliases.
	snap["k1"][0] = 'X'
	_ = arena.View(func(tx *Txn) error {
		val, _ := tx.Get("k1")
		assert.Equal(t, []byte("v1"), val)
		return nil
	})

	other := NewArena()
	other.Restore(arena.Snapshot())
	assert.Equal(t, 2, other.Len())
	_ = other.View(func(tx *Txn) error {
		val, ok := tx.Get("k2")
		assert.True(t, ok)
		assert.Equal(t, []byte("v2"), val)
		return nil
	})
}
