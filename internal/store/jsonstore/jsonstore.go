// Package jsonstore keeps the todo list in a single human-readable JSON file.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/taskks/internal/model"
)

// ErrCorrupt marks a stored file that does not decode as a todo list.
var ErrCorrupt = errors.New("corrupt todo file")

// Store reads and writes <dir>/todos.json.
// No locking; a single local user is assumed.
type Store struct {
	path string
}

// New returns a Store rooted at dir. The file is created on first Save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, model.Namespace+".json")}
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

// Load returns (nil, nil) when the file does not exist or is empty.
func (s *Store) Load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var todos []model.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return todos, nil
}

func (s *Store) Save(todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
