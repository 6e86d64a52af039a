package todolist

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskks/internal/model"
)

type fakePersistence struct {
	stored  []model.Todo
	loadErr error
	saveErr error
	saves   int
}

func (f *fakePersistence) Load() ([]model.Todo, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.stored, nil
}

func (f *fakePersistence) Save(todos []model.Todo) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = todos
	return nil
}

func seqIDs() IDSupplier {
	n := 0
	return IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func newStore(t *testing.T, titles ...string) (*Store, *fakePersistence) {
	t.Helper()
	p := &fakePersistence{}
	s := Open(p, WithIDs(seqIDs()))
	for _, title := range titles {
		_, ok := s.Add(title)
		require.True(t, ok)
	}
	return s, p
}

func titles(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Title)
	}
	return out
}

func idAt(t *testing.T, s *Store, i int) string {
	t.Helper()
	todos := s.Todos()
	require.Greater(t, len(todos), i)
	return todos[i].ID
}

func TestAdd(t *testing.T) {
	t.Run("appends with fresh id and defaults", func(t *testing.T) {
		s, p := newStore(t)

		todo, ok := s.Add("Buy milk")
		require.True(t, ok)
		assert.Equal(t, model.Todo{ID: "id-1", Title: "Buy milk"}, todo)
		assert.Equal(t, []model.Todo{todo}, s.Todos())
		assert.Equal(t, []model.Todo{todo}, p.stored)
	})

	t.Run("whitespace-only title is ignored", func(t *testing.T) {
		s, p := newStore(t, "A")
		before := s.Todos()

		_, ok := s.Add("   \t\n")
		assert.False(t, ok)
		assert.Equal(t, before, s.Todos())
		assert.Equal(t, 1, p.saves)
	})

	t.Run("title is kept as given", func(t *testing.T) {
		s, p := newStore(t)
		todo, ok := s.Add("  Walk dog ")
		require.True(t, ok)
		assert.Equal(t, "  Walk dog ", todo.Title)
		assert.Equal(t, "  Walk dog ", p.stored[0].Title)
	})
}

func TestAddThenRemoveRestoresList(t *testing.T) {
	s, p := newStore(t, "A", "B")
	before := s.Todos()

	todo, ok := s.Add("Buy milk")
	require.True(t, ok)
	require.True(t, s.Remove(todo.ID))

	assert.Equal(t, before, s.Todos())
	assert.Equal(t, before, p.stored)
}

func TestRemove(t *testing.T) {
	t.Run("missing id is a no-op", func(t *testing.T) {
		s, p := newStore(t, "A", "B")
		saves := p.saves

		assert.False(t, s.Remove("nope"))
		assert.Equal(t, []string{"A", "B"}, titles(s.Todos()))
		assert.Equal(t, saves, p.saves)
	})

	t.Run("clears anchor when the anchor goes", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C")
		b := idAt(t, s, 1)
		require.True(t, s.ToggleSelected(b, false))
		require.Equal(t, b, s.Anchor())

		require.True(t, s.Remove(b))
		assert.Empty(t, s.Anchor())
	})
}

func TestRename(t *testing.T) {
	s, _ := newStore(t, "A")
	id := idAt(t, s, 0)

	assert.False(t, s.Rename(id, "  "))
	assert.False(t, s.Rename("nope", "B"))
	assert.True(t, s.Rename(id, " B "))

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, " B ", got.Title)
}

func TestToggleCompleted(t *testing.T) {
	s, p := newStore(t, "A", "B")
	a := idAt(t, s, 0)

	require.True(t, s.ToggleCompleted(a))
	got, _ := s.Get(a)
	assert.True(t, got.IsCompleted)
	assert.True(t, p.stored[0].IsCompleted)

	require.True(t, s.ToggleCompleted(a))
	got, _ = s.Get(a)
	assert.False(t, got.IsCompleted)

	assert.False(t, s.ToggleCompleted("nope"))
}

func selectedFlags(s *Store) []bool {
	out := []bool{}
	for _, t := range s.Todos() {
		out = append(out, t.IsSelected)
	}
	return out
}

func TestToggleSelected(t *testing.T) {
	t.Run("plain click toggles one item and sets anchor", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C")
		b := idAt(t, s, 1)

		require.True(t, s.ToggleSelected(b, false))
		assert.Equal(t, []bool{false, true, false}, selectedFlags(s))
		assert.Equal(t, b, s.Anchor())

		require.True(t, s.ToggleSelected(b, false))
		assert.Equal(t, []bool{false, false, false}, selectedFlags(s))
	})

	t.Run("shift range paints from selected anchor", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		b, d := idAt(t, s, 1), idAt(t, s, 3)

		require.True(t, s.ToggleSelected(b, false))
		require.True(t, s.ToggleSelected(d, true))

		assert.Equal(t, []bool{false, true, true, true}, selectedFlags(s))
		assert.Equal(t, d, s.Anchor())
	})

	t.Run("shift range works backwards", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		a, c := idAt(t, s, 0), idAt(t, s, 2)

		require.True(t, s.ToggleSelected(c, false))
		require.True(t, s.ToggleSelected(a, true))

		assert.Equal(t, []bool{true, true, true, false}, selectedFlags(s))
	})

	t.Run("both ends unselected selects the range", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		a, d := idAt(t, s, 0), idAt(t, s, 3)

		// select then unselect A: anchor A, unselected
		require.True(t, s.ToggleSelected(a, false))
		require.True(t, s.ToggleSelected(a, false))
		require.True(t, s.ToggleSelected(d, true))

		assert.Equal(t, []bool{true, true, true, true}, selectedFlags(s))
	})

	t.Run("unselected anchor with selected target clears the range", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		a, b, d := idAt(t, s, 0), idAt(t, s, 1), idAt(t, s, 3)

		require.True(t, s.ToggleSelected(d, false))
		require.True(t, s.ToggleSelected(b, false))
		require.True(t, s.ToggleSelected(b, false)) // anchor B, unselected
		require.Equal(t, []bool{false, false, false, true}, selectedFlags(s))

		require.True(t, s.ToggleSelected(d, true))
		assert.Equal(t, []bool{false, false, false, false}, selectedFlags(s))

		// anchor is now D (unselected); A is unselected too so the range is selected
		require.True(t, s.ToggleSelected(a, true))
		assert.Equal(t, []bool{true, true, true, true}, selectedFlags(s))
	})

	t.Run("shift without anchor toggles one item", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C")
		c := idAt(t, s, 2)

		require.True(t, s.ToggleSelected(c, true))
		assert.Equal(t, []bool{false, false, true}, selectedFlags(s))
		assert.Equal(t, c, s.Anchor())
	})

	t.Run("missing target changes nothing", func(t *testing.T) {
		s, p := newStore(t, "A")
		a := idAt(t, s, 0)
		require.True(t, s.ToggleSelected(a, false))
		saves := p.saves

		assert.False(t, s.ToggleSelected("nope", true))
		assert.Equal(t, a, s.Anchor())
		assert.Equal(t, saves, p.saves)
	})
}

func TestToggleSelectAll(t *testing.T) {
	s, _ := newStore(t, "A", "B", "C")
	require.True(t, s.ToggleSelected(idAt(t, s, 0), false))
	require.True(t, s.Indeterminate())

	s.ToggleSelectAll()
	assert.Equal(t, []bool{true, true, true}, selectedFlags(s))
	assert.True(t, s.AllChecked())
	assert.False(t, s.Indeterminate())

	s.ToggleSelectAll()
	assert.Equal(t, []bool{false, false, false}, selectedFlags(s))
	assert.False(t, s.AllChecked())
}

func TestRemoveSelected(t *testing.T) {
	s, p := newStore(t, "A", "B", "C", "D")
	require.True(t, s.ToggleSelected(idAt(t, s, 0), false))
	require.True(t, s.ToggleSelected(idAt(t, s, 2), false))

	assert.Equal(t, 2, s.RemoveSelected())
	assert.Equal(t, []string{"B", "D"}, titles(s.Todos()))
	assert.Empty(t, s.Selected())
	assert.Equal(t, []string{"B", "D"}, titles(p.stored))

	t.Run("nothing selected is a no-op", func(t *testing.T) {
		saves := p.saves
		assert.Equal(t, 0, s.RemoveSelected())
		assert.Equal(t, saves, p.saves)
	})
}

func TestUndo(t *testing.T) {
	t.Run("restores bulk removal in place", func(t *testing.T) {
		s, p := newStore(t, "A", "B", "C", "D")
		before := s.Todos()
		require.True(t, s.ToggleSelected(idAt(t, s, 0), false))
		require.True(t, s.ToggleSelected(idAt(t, s, 2), false))
		require.Equal(t, 2, s.RemoveSelected())
		require.True(t, s.CanUndo())

		require.True(t, s.Undo())
		assert.Equal(t, []string{"A", "B", "C", "D"}, titles(s.Todos()))
		assert.Equal(t, before[1], s.Todos()[1])
		assert.Equal(t, []string{"A", "B", "C", "D"}, titles(p.stored))
		assert.False(t, s.CanUndo())
		assert.False(t, s.Undo())
	})

	t.Run("single removal", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C")
		require.True(t, s.Remove(idAt(t, s, 1)))
		require.True(t, s.Undo())
		assert.Equal(t, []string{"A", "B", "C"}, titles(s.Todos()))
	})
}

func TestToggleCompleteSelected(t *testing.T) {
	s, _ := newStore(t, "A", "B", "C")
	a, b := idAt(t, s, 0), idAt(t, s, 1)
	require.True(t, s.ToggleCompleted(a))
	require.True(t, s.ToggleSelected(a, false))
	require.True(t, s.ToggleSelected(b, false))

	assert.Equal(t, 2, s.ToggleCompleteSelected())

	var done []bool
	for _, todo := range s.Todos() {
		done = append(done, todo.IsCompleted)
	}
	assert.Equal(t, []bool{false, true, false}, done)
}

func TestToggleCompleteAll(t *testing.T) {
	s, _ := newStore(t, "A", "B", "C", "D", "E")
	require.True(t, s.ToggleCompleted(idAt(t, s, 1)))
	require.True(t, s.ToggleCompleted(idAt(t, s, 3)))
	require.False(t, s.AllCompleted())

	s.ToggleCompleteAll()
	done, pending := s.Stats()
	assert.Equal(t, 5, done)
	assert.Equal(t, 0, pending)
	assert.True(t, s.AllCompleted())

	s.ToggleCompleteAll()
	done, pending = s.Stats()
	assert.Equal(t, 0, done)
	assert.Equal(t, 5, pending)
}

func TestFiltered(t *testing.T) {
	s, _ := newStore(t, "Buy milk", "Walk dog", "Smile more")

	assert.Equal(t, []string{"Buy milk", "Walk dog", "Smile more"}, titles(s.Filtered()))

	s.SetSearch("MIL")
	assert.Equal(t, "MIL", s.Search())
	assert.Equal(t, []string{"Buy milk", "Smile more"}, titles(s.Filtered()))

	s.SetSearch("cat")
	assert.Empty(t, s.Filtered())
}

func TestDerivedValues(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s, _ := newStore(t)
		assert.True(t, math.IsNaN(s.Progress()))
		assert.False(t, s.HasProgress())
		assert.True(t, s.AllChecked())
		assert.False(t, s.Indeterminate())
		assert.True(t, s.AllCompleted())
		assert.Empty(t, s.Selected())
	})

	t.Run("progress", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		require.True(t, s.ToggleCompleted(idAt(t, s, 0)))
		assert.True(t, s.HasProgress())
		assert.InDelta(t, 25.0, s.Progress(), 1e-9)
	})

	t.Run("selection never exceeds list", func(t *testing.T) {
		s, _ := newStore(t, "A", "B", "C", "D")
		steps := []func(){
			func() { s.ToggleSelected(idAt(t, s, 1), false) },
			func() { s.ToggleSelected(idAt(t, s, 3), true) },
			func() { s.ToggleSelectAll() },
			func() { s.ToggleSelectAll() },
			func() { s.Add("E") },
			func() { s.ToggleSelected(idAt(t, s, 0), true) },
			func() { s.RemoveSelected() },
		}
		for _, step := range steps {
			step()
			assert.LessOrEqual(t, len(s.Selected()), len(s.Todos()))
		}
	})
}

func TestOpen(t *testing.T) {
	t.Run("loads stored list", func(t *testing.T) {
		stored := []model.Todo{{ID: "x", Title: "A", IsCompleted: true}}
		s := Open(&fakePersistence{stored: stored})
		assert.Equal(t, stored, s.Todos())
	})

	t.Run("duplicate stored ids are reported", func(t *testing.T) {
		var buf bytes.Buffer
		stored := []model.Todo{{ID: "x", Title: "A"}, {ID: "y", Title: "B"}, {ID: "x", Title: "C"}}
		s := Open(&fakePersistence{stored: stored}, WithLogger(log.New(&buf)))
		assert.Equal(t, 3, s.Len())
		assert.Contains(t, buf.String(), "share ids")

		buf.Reset()
		Open(&fakePersistence{stored: stored[:2]}, WithLogger(log.New(&buf)))
		assert.NotContains(t, buf.String(), "share ids")
	})

	t.Run("load failure starts empty", func(t *testing.T) {
		s := Open(&fakePersistence{loadErr: errors.New("corrupt")})
		assert.Empty(t, s.Todos())
	})

	t.Run("save failure does not stop the mutation", func(t *testing.T) {
		p := &fakePersistence{saveErr: errors.New("disk full")}
		s := Open(p, WithIDs(seqIDs()))
		_, ok := s.Add("A")
		assert.True(t, ok)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 1, p.saves)
	})

	t.Run("nil persistence keeps memory only", func(t *testing.T) {
		s := Open(nil)
		todo, ok := s.Add("A")
		require.True(t, ok)
		assert.NotEmpty(t, todo.ID)
	})
}
