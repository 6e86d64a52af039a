package sqlitestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskks/internal/model"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s, err := OpenInMemory()
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		todos, err := s.Load()
		require.NoError(t, err)
		assert.Nil(t, todos)
	})

	t.Run("save overwrites and survives reopen", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)

		require.NoError(t, s.Save([]model.Todo{{ID: "a", Title: "old"}}))
		want := []model.Todo{
			{ID: "a", Title: "Buy milk", IsSelected: true},
			{ID: "b", Title: "Walk dog", IsCompleted: true},
		}
		require.NoError(t, s.SaveContext(ctx, want))
		require.NoError(t, s.Close())

		reopened, err := Open(dir)
		require.NoError(t, err)
		defer func() { _ = reopened.Close() }()
		got, err := reopened.LoadContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("corrupt value", func(t *testing.T) {
		s, err := OpenInMemory()
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, 0)`, model.Namespace, []byte("nope"))
		require.NoError(t, err)

		_, err = s.Load()
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("empty dir is rejected", func(t *testing.T) {
		_, err := Open("  ")
		assert.Error(t, err)
	})
}
