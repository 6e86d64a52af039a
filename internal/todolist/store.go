// Package todolist holds the ordered todo list and every operation on it.
// Views (selection, search results, progress) are computed from the list on demand.
//
// A Store is driven by one input event at a time and is not safe for concurrent use.
package todolist

import (
	"io"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/taskks/internal/model"
)

// Persistence loads and saves the whole list under model.Namespace.
// Load returns (nil, nil) when nothing has been stored yet.
type Persistence interface {
	Load() ([]model.Todo, error)
	Save(todos []model.Todo) error
}

// IDSupplier hands out a unique id per new todo.
type IDSupplier interface {
	Next() string
}

// IDFunc adapts a plain function to IDSupplier.
type IDFunc func() string

func (f IDFunc) Next() string { return f() }

// UUIDs supplies random v4 UUIDs.
var UUIDs IDSupplier = IDFunc(uuid.NewString)

// Option configures a Store.
type Option func(*Store)

// WithIDs overrides the id supplier (UUIDs by default).
func WithIDs(ids IDSupplier) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets the logger used for mutation and persistence events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// removal remembers where a removed todo used to sit, for Undo.
type removal struct {
	index int
	todo  model.Todo
}

// Store owns the todo list. The zero value is not usable; call Open.
type Store struct {
	todos  []model.Todo
	search string
	anchor string
	undo   []removal

	persist Persistence
	ids     IDSupplier
	logger  *log.Logger
}

// Open loads the stored list and returns a Store over it. A nil Persistence
// keeps the list in memory only. Any load failure, including a corrupt stored
// value, starts from an empty list.
func Open(p Persistence, opts ...Option) *Store {
	s := &Store{
		persist: p,
		ids:     UUIDs,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if p == nil {
		return s
	}
	todos, err := p.Load()
	if err != nil {
		s.logger.Warn("load todos, starting empty", "err", err)
		return s
	}
	s.todos = todos
	if dups := duplicateIDs(todos); len(dups) > 0 {
		s.logger.Warn("stored todos share ids, only the first of each is reachable", "ids", dups)
	}
	s.logger.Debug("todos loaded", "count", len(todos))
	return s
}

func duplicateIDs(todos []model.Todo) []string {
	seen := make(map[string]bool, len(todos))
	var dups []string
	for _, t := range todos {
		if seen[t.ID] && !slices.Contains(dups, t.ID) {
			dups = append(dups, t.ID)
		}
		seen[t.ID] = true
	}
	return dups
}

// Add appends a new todo with the title as given. Whitespace-only titles are
// ignored.
func (s *Store) Add(title string) (model.Todo, bool) {
	if strings.TrimSpace(title) == "" {
		return model.Todo{}, false
	}
	t := model.Todo{ID: s.ids.Next(), Title: title}
	s.todos = append(s.todos, t)
	s.logger.Debug("todo added", "id", t.ID)
	s.save()
	return t, true
}

// Remove deletes the first todo with the given id.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.undo = []removal{{index: i, todo: s.todos[i]}}
	s.todos = slices.Delete(s.todos, i, i+1)
	if s.anchor == id {
		s.anchor = ""
	}
	s.logger.Debug("todo removed", "id", id)
	s.save()
	return true
}

// Rename replaces a todo's title. Whitespace-only titles are ignored.
func (s *Store) Rename(id, title string) bool {
	i := s.index(id)
	if i < 0 || strings.TrimSpace(title) == "" {
		return false
	}
	s.todos[i].Title = title
	s.save()
	return true
}

// ToggleCompleted flips the completion flag of one todo.
func (s *Store) ToggleCompleted(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].IsCompleted = !s.todos[i].IsCompleted
	s.save()
	return true
}

// ToggleSelected flips the selection of one todo, or with shiftHeld paints the
// range between the anchor and the target. The painted value is true when both
// ends are unselected, otherwise the anchor's current value. The target becomes
// the new anchor either way.
func (s *Store) ToggleSelected(id string, shiftHeld bool) bool {
	t := s.index(id)
	if t < 0 {
		return false
	}
	a := -1
	if shiftHeld && s.anchor != "" {
		a = s.index(s.anchor)
	}
	if a >= 0 {
		paint := s.todos[a].IsSelected
		if !s.todos[a].IsSelected && !s.todos[t].IsSelected {
			paint = true
		}
		for i := min(a, t); i <= max(a, t); i++ {
			s.todos[i].IsSelected = paint
		}
		s.logger.Debug("range selected", "from", s.anchor, "to", id, "selected", paint)
	} else {
		s.todos[t].IsSelected = !s.todos[t].IsSelected
	}
	s.anchor = id
	s.save()
	return true
}

// ToggleSelectAll selects everything unless everything is already selected,
// in which case it clears the selection.
func (s *Store) ToggleSelectAll() {
	if len(s.todos) == 0 {
		return
	}
	v := !s.AllChecked()
	for i := range s.todos {
		s.todos[i].IsSelected = v
	}
	s.save()
}

// RemoveSelected deletes every selected todo and reports how many went.
func (s *Store) RemoveSelected() int {
	var gone []removal
	kept := make([]model.Todo, 0, len(s.todos))
	for i, t := range s.todos {
		if t.IsSelected {
			gone = append(gone, removal{index: i, todo: t})
			if t.ID == s.anchor {
				s.anchor = ""
			}
			continue
		}
		kept = append(kept, t)
	}
	if len(gone) == 0 {
		return 0
	}
	s.todos = kept
	s.undo = gone
	s.logger.Debug("selected todos removed", "count", len(gone))
	s.save()
	return len(gone)
}

// ToggleCompleteSelected flips completion on selected todos only.
func (s *Store) ToggleCompleteSelected() int {
	n := 0
	for i := range s.todos {
		if s.todos[i].IsSelected {
			s.todos[i].IsCompleted = !s.todos[i].IsCompleted
			n++
		}
	}
	if n > 0 {
		s.save()
	}
	return n
}

// ToggleCompleteAll completes everything unless everything is already
// complete, in which case it marks everything incomplete.
func (s *Store) ToggleCompleteAll() {
	if len(s.todos) == 0 {
		return
	}
	v := !s.AllCompleted()
	for i := range s.todos {
		s.todos[i].IsCompleted = v
	}
	s.save()
}

// Undo puts back the todos removed by the last Remove or RemoveSelected.
func (s *Store) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	for _, r := range s.undo {
		i := min(r.index, len(s.todos))
		s.todos = slices.Insert(s.todos, i, r.todo)
	}
	s.logger.Debug("removal undone", "count", len(s.undo))
	s.undo = nil
	s.save()
	return true
}

// CanUndo reports whether there is a removal to undo.
func (s *Store) CanUndo() bool { return len(s.undo) > 0 }

// SetSearch stores the query Filtered matches against.
func (s *Store) SetSearch(text string) { s.search = text }

// Search returns the current query.
func (s *Store) Search() string { return s.search }

// Anchor returns the id of the last select-clicked todo, or "".
func (s *Store) Anchor() string { return s.anchor }

// Todos returns a copy of the list in insertion order.
func (s *Store) Todos() []model.Todo { return slices.Clone(s.todos) }

// Len is the number of todos.
func (s *Store) Len() int { return len(s.todos) }

// Get looks a todo up by id.
func (s *Store) Get(id string) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

// Selected returns the selected todos in list order.
func (s *Store) Selected() []model.Todo {
	return s.filter(func(t model.Todo) bool { return t.IsSelected })
}

// Filtered returns the todos whose title contains the search query,
// ignoring case.
func (s *Store) Filtered() []model.Todo {
	q := strings.ToLower(s.search)
	return s.filter(func(t model.Todo) bool {
		return strings.Contains(strings.ToLower(t.Title), q)
	})
}

// Stats counts completed and pending todos.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.todos {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

// Progress is the completed percentage, NaN for an empty list.
func (s *Store) Progress() float64 {
	if len(s.todos) == 0 {
		return math.NaN()
	}
	done, _ := s.Stats()
	return 100 * float64(done) / float64(len(s.todos))
}

// HasProgress reports whether Progress is defined.
func (s *Store) HasProgress() bool { return len(s.todos) > 0 }

// AllChecked is true when every todo is selected, including the empty list.
func (s *Store) AllChecked() bool { return len(s.Selected()) == len(s.todos) }

// Indeterminate is true when some but not all todos are selected.
func (s *Store) Indeterminate() bool {
	n := len(s.Selected())
	return n > 0 && n < len(s.todos)
}

// AllCompleted is true when every todo is complete, including the empty list.
func (s *Store) AllCompleted() bool {
	for _, t := range s.todos {
		if !t.IsCompleted {
			return false
		}
	}
	return true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}

func (s *Store) filter(keep func(model.Todo) bool) []model.Todo {
	out := []model.Todo{}
	for _, t := range s.todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(slices.Clone(s.todos)); err != nil {
		s.logger.Warn("save todos", "err", err)
	}
}
