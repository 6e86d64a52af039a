package cli

import (
	"strconv"
	"strings"

	"github.com/Makepad-fr/taskks/internal/todolist"
)

// resolveRef turns a 1-based position, an id or a unique id prefix into an id.
func resolveRef(s *todolist.Store, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	todos := s.Todos()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(todos) {
			return "", usagef("index out of range: have %d, got %d (run `taskks ls` to see valid indexes)", len(todos), n)
		}
		return todos[n-1].ID, nil
	}
	if ref == "" {
		return "", usagef("empty ref")
	}
	if _, ok := s.Get(ref); ok {
		return ref, nil
	}
	var match string
	for _, t := range todos {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != "" {
			return "", usagef("ambiguous id prefix %q", ref)
		}
		match = t.ID
	}
	if match == "" {
		return "", usagef("no task matches %q", ref)
	}
	return match, nil
}
