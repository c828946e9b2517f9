// Package schema is the column catalog of the game database. Both the patch
// generator and the reader treat it as the single source of column order.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Table names.
const (
	TableCards                    = "cards"
	TableCardUniqueInfos          = "card_unique_infos"
	TableCardCardCategories       = "card_card_categories"
	TableLeaderSkillSets          = "leader_skill_sets"
	TableLeaderSkills             = "leader_skills"
	TablePassiveSkillSets         = "passive_skill_sets"
	TablePassiveSkills            = "passive_skills"
	TablePassiveSkillSetRelations = "passive_skill_set_relations"
	TableSpecialSets              = "special_sets"
	TableSpecials                 = "specials"
	TableCardSpecials             = "card_specials"
	TablePassiveSkillEffects      = "passive_skill_effects"
	TableEffectPacks              = "effect_packs"
	TableActiveSkillSets          = "active_skill_sets"
	TableActiveSkills             = "active_skills"
	TableCardActiveSkills         = "card_active_skills"
	TableOptimalAwakeningGrowths  = "optimal_awakening_growths"
)

var columns = map[string][]string{
	TableCards: {
		"id", "name", "character_id", "card_unique_info_id", "cost", "rarity",
		"hp_init", "hp_max", "atk_init", "atk_max", "def_init", "def_max",
		"element", "lv_max", "skill_lv_max", "grow_type", "optimal_awakening_grow_type",
		"price", "exp_type", "training_exp", "special_motion",
		"passive_skill_set_id", "leader_skill_set_id",
		"link_skill1_id", "link_skill2_id", "link_skill3_id", "link_skill4_id",
		"link_skill5_id", "link_skill6_id", "link_skill7_id",
		"eball_mod_min", "eball_mod_num100", "eball_mod_mid", "eball_mod_mid_num",
		"eball_mod_max", "eball_mod_max_num",
		"max_level_reward_id", "max_level_reward_type", "collectable_type",
		"face_x", "face_y", "aura_id", "aura_scale", "aura_offset_x", "aura_offset_y",
		"is_aura_front", "is_selling_only", "awakening_number", "resource_id",
		"bg_effect_id", "selling_exchange_point", "awakening_element_type",
		"potential_board_id", "open_at", "created_at", "updated_at",
	},
	TableCardUniqueInfos:    {"id", "name", "kana", "created_at", "updated_at"},
	TableCardCardCategories: {"id", "card_id", "card_category_id", "num", "created_at", "updated_at"},
	TableLeaderSkillSets:    {"id", "name", "description", "created_at", "updated_at"},
	TableLeaderSkills: {
		"id", "leader_skill_set_id", "exec_timing_type", "target_type",
		"sub_target_type_set_id", "causality_conditions", "efficacy_type",
		"efficacy_values", "calc_option", "created_at", "updated_at",
	},
	TablePassiveSkillSets: {"id", "name", "description", "itemized_description", "created_at", "updated_at"},
	TablePassiveSkills: {
		"id", "name", "description", "exec_timing_type", "efficacy_type", "target_type",
		"sub_target_type_set_id", "passive_skill_effect_id", "calc_option", "turn",
		"is_once", "probability", "causality_conditions",
		"eff_value1", "eff_value2", "eff_value3", "efficacy_values",
		"created_at", "updated_at",
	},
	TablePassiveSkillSetRelations: {"id", "passive_skill_set_id", "passive_skill_id", "created_at", "updated_at"},
	TableSpecialSets: {
		"id", "name", "description", "causality_description", "aim_target",
		"increase_rate", "lv_bonus", "is_inactive", "created_at", "updated_at",
	},
	TableSpecials: {
		"id", "special_set_id", "type", "efficacy_type", "target_type", "calc_option",
		"turn", "prob", "causality_conditions", "eff_value1", "eff_value2", "eff_value3",
		"created_at", "updated_at",
	},
	TableCardSpecials: {
		"id", "card_id", "special_set_id", "priority", "style", "lv_start",
		"eball_num_start", "view_id", "card_costume_condition_id",
		"special_bonus_id1", "special_bonus_lv1", "bonus_view_id1",
		"special_bonus_id2", "special_bonus_lv2", "bonus_view_id2",
		"causality_conditions", "special_asset_id", "created_at", "updated_at",
	},
	TablePassiveSkillEffects: {"id", "script_name", "lite_flicker_rate", "bgm_id", "created_at", "updated_at"},
	TableEffectPacks: {
		"id", "category", "name", "pack_name", "scene_name",
		"red", "green", "blue", "alpha", "lite_flicker_rate", "created_at", "updated_at",
	},
	TableActiveSkillSets: {
		"id", "name", "effect_description", "condition_description", "turn",
		"exec_limit", "causality_conditions", "ultimate_special_id", "special_view_id",
		"costume_special_view_id", "bgm_id", "created_at", "updated_at",
	},
	TableActiveSkills: {
		"id", "active_skill_set_id", "target_type", "sub_target_type_set_id",
		"calc_option", "efficacy_type", "eff_val1", "eff_val2", "eff_val3",
		"efficacy_values", "thumb_effect_id", "effect_se_id", "created_at", "updated_at",
	},
	TableCardActiveSkills: {"id", "card_id", "active_skill_set_id", "created_at", "updated_at"},
	TableOptimalAwakeningGrowths: {
		"id", "growth_type_id", "val1_eza_marker", "val2_max_level",
		"val3_skill_lv_max", "passive_skill_set_id", "leader_skill_set_id",
	},
}

// Catalog maps table names to ordered column lists. The zero value is empty;
// use Default for the game schema.
type Catalog struct {
	tables map[string][]string
}

// Default returns the catalog of the game schema.
func Default() *Catalog {
	return &Catalog{tables: columns}
}

// New returns a catalog over the given tables. The map is copied.
func New(tables map[string][]string) *Catalog {
	c := &Catalog{tables: make(map[string][]string, len(tables))}
	for name, cols := range tables {
		c.tables[name] = slices.Clone(cols)
	}
	return c
}

// Columns returns the ordered column names of table, or
// types.ErrTableNotFound. The returned slice must not be modified.
func (c *Catalog) Columns(table string) ([]string, error) {
	cols, ok := c.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, table)
	}
	return cols, nil
}

// Has reports whether table is in the catalog.
func (c *Catalog) Has(table string) bool {
	_, ok := c.tables[table]
	return ok
}

// Tables returns the catalog's table names in sorted order.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CreateTable returns a CREATE TABLE statement for table. ID columns get
// integer affinity so that text parameters compare numerically, as they do
// against the game's own database; other columns are untyped. The key is
// declared INT rather than INTEGER so it is not a rowid alias and composite
// IDs such as "100_200" can still be stored.
func (c *Catalog) CreateTable(table string) (string, error) {
	cols, err := c.Columns(table)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(QuoteIdent(table))
	b.WriteString(" (\n")
	for i, col := range cols {
		b.WriteString("    ")
		b.WriteString(QuoteIdent(col))
		switch {
		case col == "id":
			b.WriteString(" INT PRIMARY KEY")
		case strings.HasSuffix(col, "_id"):
			b.WriteString(" INTEGER")
		}
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String(), nil
}

// QuoteIdent wraps an identifier in double quotes, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
