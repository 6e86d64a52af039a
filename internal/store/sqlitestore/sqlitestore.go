// Package sqlitestore keeps the todo list as a JSON value in a namespaced
// key-value table of a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Makepad-fr/taskks/internal/model"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	fileName    = "taskks.db"
	busyTimeout = 5000 // milliseconds
)

// ErrCorrupt marks a stored value that does not decode as a todo list.
var ErrCorrupt = errors.New("corrupt todo record")

// Store reads and writes one key of the kv table.
type Store struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) <dir>/taskks.db.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("sqlite data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", filepath.Join(dir, fileName), busyTimeout)
	return open(dsn)
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps :memory: databases alive and writes ordered
	db.SetMaxOpenConns(1)
	s := &Store{db: db, key: model.Namespace}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

// Load returns (nil, nil) when nothing is stored under the key.
func (s *Store) Load() ([]model.Todo, error) {
	return s.LoadContext(context.Background())
}

func (s *Store) LoadContext(ctx context.Context) ([]model.Todo, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get %q: %w", s.key, err)
	}
	var todos []model.Todo
	if err := json.Unmarshal(value, &todos); err != nil {
		return nil, fmt.Errorf("%w: kv get %q: %v", ErrCorrupt, s.key, err)
	}
	return todos, nil
}

func (s *Store) Save(todos []model.Todo) error {
	return s.SaveContext(context.Background(), todos)
}

func (s *Store) SaveContext(ctx context.Context, todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	value, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", s.key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("kv set %q: %w", s.key, err)
	}
	return nil
}
