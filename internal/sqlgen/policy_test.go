package sqlgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

func TestValueForDefaults(t *testing.T) {
	p := DefaultPolicy()
	empty := func(table string) *Row { return NewRow(table, map[string]any{"id": "1"}) }

	tests := []struct {
		table  string
		column string
		want   any
	}{
		{schema.TableCards, "aura_scale", nil},
		{schema.TableCards, "is_aura_front", 0},
		{schema.TableCards, "eball_mod_mid_num", 0},
		{schema.TableCards, "selling_exchange_point", 0},
		{schema.TableCards, "max_level_reward_id", "1"},
		{schema.TableCards, "max_level_reward_type", "1"},
		{schema.TableCards, "open_at", 0},
		{schema.TableCards, "created_at", 0},
		{schema.TableCards, "link_skill3_id", nil},
		{schema.TableCardUniqueInfos, "kana", nil},
		{schema.TablePassiveSkills, "efficacy_values", "{}"},
		{schema.TableActiveSkills, "efficacy_values", "{}"},
		{schema.TableActiveSkillSets, "costume_special_view_id", 0},
		{schema.TableActiveSkillSets, "bgm_id", nil},
		{schema.TableCardSpecials, "style", "Normal"},
		{schema.TableCardSpecials, "eball_num_start", 12},
		{schema.TableCardSpecials, "bonus_view_id2", 0},
		{schema.TableCardSpecials, "view_id", nil},
		{schema.TablePassiveSkillEffects, "bgm_id", nil},
		{schema.TableEffectPacks, "red", nil},
	}
	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ValueFor(tt.table, tt.column, empty(tt.table)))
		})
	}
}

func TestValueForExplicitWins(t *testing.T) {
	p := DefaultPolicy()
	r := NewRow(schema.TableCardSpecials, map[string]any{"style": "Hyper", "eball_num_start": 18, "created_at": "x"})
	assert.Equal(t, "Hyper", p.ValueFor(schema.TableCardSpecials, "style", r))
	assert.Equal(t, 18, p.ValueFor(schema.TableCardSpecials, "eball_num_start", r))
	assert.Equal(t, "x", p.ValueFor(schema.TableCardSpecials, "created_at", r))
}

func TestValueForLinkColumns(t *testing.T) {
	p := DefaultPolicy()
	f := types.NewCardForm("1")
	f.LinkSkillIDs = []string{"7", "", "0", "", "", "", ""}
	r := CardRow(f)

	assert.Equal(t, "7", p.ValueFor(schema.TableCards, "link_skill1_id", r))
	for _, col := range []string{"link_skill2_id", "link_skill3_id", "link_skill4_id", "link_skill7_id"} {
		assert.Nil(t, p.ValueFor(schema.TableCards, col, r), col)
	}

	explicit := NewRow(schema.TableCards, map[string]any{"link_skill1_id": ""})
	assert.Nil(t, p.ValueFor(schema.TableCards, "link_skill1_id", explicit))
}

func TestValueForNowPolicy(t *testing.T) {
	fixed := time.Date(2024, 12, 31, 23, 59, 58, 7_000_000, time.Local)
	p := Policy{Timestamps: types.TimestampNow, Now: func() time.Time { return fixed }}
	r := NewRow(schema.TableCards, nil)

	assert.Equal(t, "2024-12-31 23:59:58.007000", p.ValueFor(schema.TableCards, "created_at", r))
	assert.Equal(t, "2024-12-31 23:59:58.007000", p.ValueFor(schema.TableCards, "updated_at", r))
	assert.Equal(t, 0, p.ValueFor(schema.TableCards, "open_at", r))
}

func TestRowSkipsNilPointers(t *testing.T) {
	r := UniqueInfoRow(types.CardUniqueInfo{ID: "1", Name: "Goku"})
	_, ok := r.Lookup("kana")
	assert.False(t, ok)

	kana := "ごくう"
	r = UniqueInfoRow(types.CardUniqueInfo{ID: "1", Name: "Goku", Kana: &kana})
	v, ok := r.Lookup("kana")
	assert.True(t, ok)
	assert.Equal(t, kana, v)
}
