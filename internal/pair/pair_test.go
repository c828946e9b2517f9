package pair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

func TestSiblings(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"123450", []string{"123450", "123451"}},
		{"123451", []string{"123450", "123451"}},
		{"123457", []string{"123450", "123451"}},
		{"7", []string{"7"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Siblings(tt.id))
		})
	}
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "12345", DedupKey("123450"))
	assert.Equal(t, "12345", DedupKey("123451"))
	assert.Equal(t, "123457", DedupKey("123457"))
	assert.Equal(t, "1", DedupKey("1"))
}

func TestPrefer(t *testing.T) {
	assert.True(t, Prefer("123450", "123451"))
	assert.False(t, Prefer("123451", "123450"))
	assert.False(t, Prefer("123457", "123451"))
}

// fixture returns a FetchFunc over a fixed set of per-form states and
// records which IDs were requested.
func fixture(forms map[string]*types.PatchState, calls *[]string) FetchFunc {
	return func(id string) (*types.PatchState, error) {
		*calls = append(*calls, id)
		return forms[id], nil
	}
}

func form(id, leaderSet string, specials ...string) *types.PatchState {
	s := types.NewPatchState()
	f := types.NewCardForm(id)
	f.LeaderSkillSetID = leaderSet
	f.CardUniqueInfoID = "70" + id[:len(id)-1]
	s.CardForms = append(s.CardForms, f)
	s.CardUniqueInfos = append(s.CardUniqueInfos, types.CardUniqueInfo{ID: f.CardUniqueInfoID, Name: "form " + id})
	s.LeaderSkillSets = append(s.LeaderSkillSets, types.LeaderSkillSet{ID: leaderSet, Name: "from " + id})
	for _, cs := range specials {
		s.CardSpecials = append(s.CardSpecials, types.CardSpecial{ID: cs, CardID: id, SpecialSetID: "500"})
		if len(s.SpecialSets) == 0 {
			s.SpecialSets = append(s.SpecialSets, types.SpecialSet{ID: "500"})
		}
	}
	return s
}

func TestResolveMergesPair(t *testing.T) {
	forms := map[string]*types.PatchState{
		"123450": form("123450", "999", "a", "b"),
		"123451": form("123451", "999", "c"),
	}

	for _, selected := range []string{"123450", "123451"} {
		t.Run(selected, func(t *testing.T) {
			var calls []string
			got, err := Resolve(selected, fixture(forms, &calls))
			require.NoError(t, err)

			require.Len(t, got.CardForms, 2)
			assert.Equal(t, "123450", got.CardForms[0].ID)
			assert.Equal(t, "123451", got.CardForms[1].ID)

			require.Len(t, got.LeaderSkillSets, 1)
			assert.Equal(t, "999", got.LeaderSkillSets[0].ID)
			assert.Equal(t, "from 123450", got.LeaderSkillSets[0].Name, "first occurrence wins")

			assert.Len(t, got.CardUniqueInfos, 1)
			assert.Len(t, got.SpecialSets, 1)
			assert.Len(t, got.CardSpecials, 3)
			assert.False(t, got.IsEZA)
			assert.Equal(t, []string{"123450", "123451"}, calls)
		})
	}
}

func TestResolveSingleSibling(t *testing.T) {
	forms := map[string]*types.PatchState{"123451": form("123451", "999")}
	var calls []string
	got, err := Resolve("123450", fixture(forms, &calls))
	require.NoError(t, err)
	require.Len(t, got.CardForms, 1)
	assert.Equal(t, "123451", got.CardForms[0].ID)
}

func TestResolveFallsBackToSelectedID(t *testing.T) {
	forms := map[string]*types.PatchState{"123457": form("123457", "1")}
	var calls []string
	got, err := Resolve("123457", fixture(forms, &calls))
	require.NoError(t, err)
	require.Len(t, got.CardForms, 1)
	assert.Equal(t, "123457", got.CardForms[0].ID)
	assert.Equal(t, []string{"123450", "123451", "123457"}, calls)
}

func TestResolveShortIDFetchedOnce(t *testing.T) {
	var calls []string
	_, err := Resolve("7", fixture(nil, &calls))
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, []string{"7"}, calls)
}

func TestResolveNotFound(t *testing.T) {
	var calls []string
	_, err := Resolve("555550", fixture(nil, &calls))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestResolvePropagatesFetchErrors(t *testing.T) {
	boom := &types.QueryError{Query: "cards by id", Err: errors.New("no such table: cards")}
	_, err := Resolve("123450", func(string) (*types.PatchState, error) { return nil, boom })
	assert.ErrorIs(t, err, types.ErrQueryFailure)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestMergeSkipsNilAndDedupsMisc(t *testing.T) {
	a := types.NewPatchState()
	a.EffectPacks = []types.EffectPackEntry{{ID: "1", Name: "first"}}
	b := types.NewPatchState()
	b.EffectPacks = []types.EffectPackEntry{{ID: "1", Name: "second"}, {ID: "2"}}
	b.IsEZA = true

	got := Merge(a, nil, b)
	require.Len(t, got.EffectPacks, 2)
	assert.Equal(t, "first", got.EffectPacks[0].Name)
	assert.False(t, got.IsEZA)
	assert.NotNil(t, got.CardForms)
}
