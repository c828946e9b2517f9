// Package patchmaker is the public API: open a game database, search and
// fetch characters into an editable PatchState, and turn a PatchState into a
// SQL patch.
//
// Example:
//
//	db, err := patchmaker.LoadDatabase(data)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	state, err := db.GetCharacterDetails("1062320")
//	if err != nil {
//	    return err
//	}
//	sql := patchmaker.GenerateSQLPatch(state)
package patchmaker

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/logging"
	"github.com/mesh-intelligence/patchmaker/internal/sqlgen"
	"github.com/mesh-intelligence/patchmaker/internal/sqlite"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Version is the release version of the module.
const Version = "0.3.0"

type settings struct {
	log        *zap.Logger
	timestamps types.TimestampPolicy
	now        func() time.Time
	patchID    string
}

// Option configures LoadDatabase and GenerateSQLPatch. Options that do not
// apply to a call are ignored.
type Option func(*settings)

// WithLogger routes diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithTimestampPolicy selects literal zero or wall-clock timestamps.
func WithTimestampPolicy(p types.TimestampPolicy) Option {
	return func(s *settings) { s.timestamps = p }
}

// WithClock overrides the time source of the "now" timestamp policy.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithPatchID writes id into the patch header.
func WithPatchID(id string) Option {
	return func(s *settings) { s.patchID = id }
}

func apply(opts []Option) settings {
	s := settings{timestamps: types.TimestampZero}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// GenerateSQLPatch renders state as SQL. It never fails: problems such as a
// table without a column definition become comment lines in the output.
func GenerateSQLPatch(state *types.PatchState, opts ...Option) string {
	s := apply(opts)
	gopts := []sqlgen.Option{
		sqlgen.WithLogger(logging.Component(s.log, "sqlgen")),
		sqlgen.WithTimestampPolicy(s.timestamps),
		sqlgen.WithPatchID(s.patchID),
	}
	if s.now != nil {
		gopts = append(gopts, sqlgen.WithClock(s.now))
	}
	return sqlgen.New(gopts...).Generate(state)
}

// Database is an opened game database. It is safe for concurrent reads.
type Database struct {
	store *sqlite.Store
}

// LoadDatabase opens a database file image. The returned Database works on
// a private copy; call Close to release it. A buffer that cannot be opened
// yields an error matching types.ErrStoreFailure.
func LoadDatabase(data []byte, opts ...Option) (*Database, error) {
	s := apply(opts)
	store, err := sqlite.Load(data, sqlite.WithLogger(logging.Component(s.log, "sqlite")))
	if err != nil {
		return nil, err
	}
	return &Database{store: store}, nil
}

// SearchCharactersByName returns at most 50 cards whose name contains query
// or whose ID starts with it, one hit per character.
func (d *Database) SearchCharactersByName(query string, filter types.SearchFilter) ([]types.CardBasicInfo, error) {
	return d.store.Search(query, filter)
}

// GetCharacterDetails returns both forms of the character cardID belongs to
// and every entity they reference. It returns types.ErrNotFound when no card
// matches.
func (d *Database) GetCharacterDetails(cardID string) (*types.PatchState, error) {
	return d.store.FetchCharacter(cardID)
}

// Close releases the database.
func (d *Database) Close() error {
	return d.store.Close()
}
