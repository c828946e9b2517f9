// Package sqlite opens game database files with modernc.org/sqlite and
// reads card data out of them. A Store owns a private copy of the database
// so that patches can be applied without touching the caller's file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

const driverName = "sqlite"

var (
	engineOnce sync.Once
	engineErr  error
)

// initEngine checks once that the SQLite driver is registered. Later calls
// return the cached result.
func initEngine() error {
	engineOnce.Do(func() {
		if !slices.Contains(sql.Drivers(), driverName) {
			engineErr = fmt.Errorf("driver %q not registered", driverName)
		}
	})
	return engineErr
}

// Store is an opened game database.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Load opens a database from an in-memory file image. The bytes are copied
// to a private temporary file which Close removes. A buffer that is empty or
// is not a SQLite database yields a *types.StoreError.
func Load(data []byte, opts ...Option) (*Store, error) {
	if len(data) == 0 {
		return nil, &types.StoreError{Op: "open", Err: types.ErrEmptyDatabase}
	}
	return open(data, opts)
}

// LoadFile reads path and calls Load.
func LoadFile(path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.StoreError{Op: "read", Err: err}
	}
	return Load(data, opts...)
}

// New returns an empty database. Use CreateTables to lay down a schema.
func New(opts ...Option) (*Store, error) {
	return open(nil, opts)
}

func open(data []byte, opts []Option) (*Store, error) {
	if err := initEngine(); err != nil {
		return nil, &types.StoreError{Op: "init", Err: err}
	}
	s := &Store{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	f, err := os.CreateTemp("", "patchmaker-*.db")
	if err != nil {
		return nil, &types.StoreError{Op: "open", Err: err}
	}
	s.path = f.Name()
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(s.path)
		return nil, &types.StoreError{Op: "open", Err: err}
	}

	db, err := sql.Open(driverName, s.path)
	if err != nil {
		os.Remove(s.path)
		return nil, &types.StoreError{Op: "open", Err: err}
	}
	// One connection keeps temp tables and pragmas consistent across calls.
	db.SetMaxOpenConns(1)

	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		db.Close()
		os.Remove(s.path)
		return nil, &types.StoreError{Op: "open", Err: fmt.Errorf("invalid or corrupted database file: %w", err)}
	}
	s.db = db
	s.log.Debug("database opened", zap.String("path", s.path), zap.Int("objects", n), zap.Int("bytes", len(data)))
	return s, nil
}

// Close releases the connection and removes the private copy. Close is
// idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if rerr := os.Remove(s.path); rerr != nil && !os.IsNotExist(rerr) {
		err = errors.Join(err, rerr)
	}
	return err
}

// CreateTables creates every table of cat that does not exist yet.
func (s *Store) CreateTables(cat *schema.Catalog) error {
	var ddl []string
	for _, table := range cat.Tables() {
		stmt, err := cat.CreateTable(table)
		if err != nil {
			return err
		}
		ddl = append(ddl, stmt)
	}
	return s.Apply(strings.Join(ddl, "\n"))
}

// Apply executes SQL text, typically a generated patch, in one transaction.
// Either every statement takes effect or none does.
func (s *Store) Apply(script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return &types.StoreError{Op: "apply", Err: types.ErrStoreClosed}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &types.QueryError{Query: "begin apply", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(script); err != nil {
		return &types.QueryError{Query: "apply script", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &types.QueryError{Query: "commit apply", Err: err}
	}
	return nil
}

// SaveAs writes a compacted copy of the database to path. The copy is made
// next to path and renamed into place so a failed save leaves any existing
// file untouched.
func (s *Store) SaveAs(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return &types.StoreError{Op: "save", Err: types.ErrStoreClosed}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".patchmaker-*.db")
	if err != nil {
		return &types.StoreError{Op: "save", Err: err}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to overwrite an existing file.
	os.Remove(tmpPath)

	if _, err := s.db.Exec("VACUUM INTO ?", tmpPath); err != nil {
		os.Remove(tmpPath)
		return &types.QueryError{Query: "vacuum into", Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &types.StoreError{Op: "save", Err: err}
	}
	return nil
}

// Bytes returns the database file image.
func (s *Store) Bytes() ([]byte, error) {
	dir, err := os.MkdirTemp("", "patchmaker-export-*")
	if err != nil {
		return nil, &types.StoreError{Op: "export", Err: err}
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "export.db")
	if err := s.SaveAs(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.StoreError{Op: "export", Err: err}
	}
	return data, nil
}

// query runs a read and returns every row as a column-name map. The label
// names the query in errors and logs.
func (s *Store) query(label, q string, args ...any) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, &types.StoreError{Op: "query", Err: types.ErrStoreClosed}
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		s.log.Debug("query failed", zap.String("query", label), zap.Error(err))
		return nil, &types.QueryError{Query: label, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &types.QueryError{Query: label, Err: err}
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &types.QueryError{Query: label, Err: err}
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.QueryError{Query: label, Err: err}
	}
	return out, nil
}

// queryOne returns the first row, or nil when there is none.
func (s *Store) queryOne(label, q string, args ...any) (map[string]any, error) {
	rows, err := s.query(label, q, args...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
