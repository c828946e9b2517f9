package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

func sampleState(t *testing.T) *types.PatchState {
	t.Helper()
	s := types.NewPatchState()
	f := types.NewCardForm("1062320")
	f.Name = "Goku"
	f.LinkSkillIDs[0] = "11"
	f.CategoryIDs = []string{"7"}
	require.NoError(t, s.AddCardForm(f))

	p := types.NewPassiveSkill("502")
	p.EffValue1 = types.StrPtr("30")
	s.PassiveSkillSets = []types.PassiveSkillSet{{ID: "500", Name: "Passive", Skills: []types.PassiveSkill{p}}}
	s.IsEZA = true
	s.BaseCardIDForEZA = "1062320"
	s.OptimalAwakeningGrowth = &types.OptimalAwakeningGrowth{ID: "7500001", GrowthTypeID: "7600001", Val2MaxLevel: 140}
	return s
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"state.json", types.FormatJSON, false},
		{"dir/State.JSON", types.FormatJSON, false},
		{"state.yaml", types.FormatYAML, false},
		{"state.yml", types.FormatYAML, false},
		{"state.toml", "", true},
		{"state", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownExtension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, name := range []string{"state.json", "state.yaml"} {
		t.Run(name, func(t *testing.T) {
			want := sampleState(t)
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, Write(path, want))
			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.True(t, got.PassiveSkillSets[0].Skills[0].EffValue1.IsString(), "quoted numbers stay strings")
		})
	}
}

func TestDecodeNormalizesSparseDocuments(t *testing.T) {
	got, err := Decode([]byte("cardForms:\n  - id: \"1\"\n    name: Goku\n"), types.FormatYAML)
	require.NoError(t, err)
	require.Len(t, got.CardForms, 1)
	assert.Len(t, got.CardForms[0].LinkSkillIDs, types.LinkSlots)
	assert.NotNil(t, got.CardSpecials)
	assert.Nil(t, got.OptimalAwakeningGrowth)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("{"), types.FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte("{}"), "xml")
	assert.ErrorIs(t, err, types.ErrOutputFormatUnknown)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAtomicReplacesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteAtomicMissingDir(t *testing.T) {
	err := WriteAtomic(filepath.Join(t.TempDir(), "nope", "out.sql"), []byte("x"))
	assert.Error(t, err)
}
