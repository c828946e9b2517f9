package sqlite

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/internal/sqlgen"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// newFixture returns an empty store with every catalog table created and
// state applied through a generated patch.
func newFixture(t *testing.T, state *types.PatchState) *Store {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.CreateTables(schema.Default()))
	if state != nil {
		require.NoError(t, s.Apply(sqlgen.New().Generate(state)))
	}
	return s
}

func card(id, name string, rarity, element int) types.CardForm {
	f := types.NewCardForm(id)
	f.Name = name
	f.Rarity = rarity
	f.Element = element
	return f
}

func TestLoadRejectsBadBuffers(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"nil buffer", nil, types.ErrEmptyDatabase},
		{"empty buffer", []byte{}, types.ErrEmptyDatabase},
		{"text buffer", bytes.Repeat([]byte("not a database "), 100), types.ErrStoreFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.data)
			assert.Nil(t, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var se *types.StoreError
			assert.True(t, errors.As(err, &se))
			assert.True(t, types.IsHardError(err))
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.db"))
	assert.ErrorIs(t, err, types.ErrStoreFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBytesRoundTrip(t *testing.T) {
	state := types.NewPatchState()
	require.NoError(t, state.AddCardForm(card("1000010", "Goku", types.RarityUR, types.ElementSTR)))
	src := newFixture(t, state)

	data, err := src.Bytes()
	require.NoError(t, err)

	dst, err := Load(data)
	require.NoError(t, err)
	defer dst.Close()

	hits, err := dst.Search("Goku", types.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1000010", hits[0].ID)
}

func TestSaveAsReplacesTarget(t *testing.T) {
	s := newFixture(t, nil)
	path := filepath.Join(t.TempDir(), "game.db")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, s.SaveAs(path))

	reopened, err := LoadFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	_, err = reopened.Search("x", types.SearchFilter{})
	assert.NoError(t, err)
}

func TestApplyIsAtomic(t *testing.T) {
	s := newFixture(t, nil)
	script := `INSERT INTO "cards" ("id", "name") VALUES (1000010, 'Goku');
INSERT INTO "no_such_table" ("id") VALUES (1);`

	err := s.Apply(script)
	var qe *types.QueryError
	require.True(t, errors.As(err, &qe))

	hits, err := s.Search("Goku", types.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, hits, "failed script must not leave rows behind")
}

func TestMissingTableIsQueryError(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Search("Goku", types.SearchFilter{})
	var qe *types.QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "search cards", qe.Query)
	assert.ErrorIs(t, err, types.ErrQueryFailure)

	_, err = s.FetchCharacter("1000010")
	assert.ErrorIs(t, err, types.ErrQueryFailure)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	path := s.path

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "private copy must be removed")

	_, err = s.Search("x", types.SearchFilter{})
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.ErrorIs(t, s.Apply("SELECT 1"), types.ErrStoreClosed)
}
