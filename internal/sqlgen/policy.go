package sqlgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// null marks a column whose default is SQL NULL. It is distinct from a
// missing entry, which also renders NULL but means "no rule applies".
type nullValue struct{}

var null = nullValue{}

// columnDefaults holds the per-table fallbacks used when an entity does not
// supply a column.
var columnDefaults = map[string]map[string]any{
	schema.TableCards: {
		"optimal_awakening_grow_type": null,
		"aura_id":                     null,
		"aura_scale":                  null,
		"aura_offset_x":               null,
		"aura_offset_y":               null,
		"awakening_number":            null,
		"resource_id":                 null,
		"bg_effect_id":                null,
		"awakening_element_type":      null,
		"potential_board_id":          null,
		"is_aura_front":               0,
		"eball_mod_min":               0,
		"eball_mod_num100":            0,
		"eball_mod_mid":               0,
		"eball_mod_mid_num":           0,
		"eball_mod_max":               0,
		"eball_mod_max_num":           0,
		"price":                       0,
		"exp_type":                    0,
		"training_exp":                0,
		"selling_exchange_point":      0,
		"special_motion":              0,
		"cost":                        0,
		"rarity":                      0,
		"hp_init":                     0,
		"hp_max":                      0,
		"atk_init":                    0,
		"atk_max":                     0,
		"def_init":                    0,
		"def_max":                     0,
		"element":                     0,
		"lv_max":                      0,
		"skill_lv_max":                0,
		"grow_type":                   0,
		"face_x":                      0,
		"face_y":                      0,
		"collectable_type":            0,
		"is_selling_only":             0,
		"max_level_reward_id":         "1",
		"max_level_reward_type":       "1",
	},
	schema.TableCardUniqueInfos: {
		"kana": null,
	},
	schema.TableLeaderSkills: {
		"causality_conditions":   null,
		"sub_target_type_set_id": null,
	},
	schema.TableSpecials: {
		"causality_conditions": null,
	},
	schema.TablePassiveSkillSets: {
		"itemized_description": null,
	},
	schema.TablePassiveSkills: {
		"efficacy_values":         "{}",
		"sub_target_type_set_id":  null,
		"passive_skill_effect_id": null,
		"causality_conditions":    null,
	},
	schema.TableSpecialSets: {
		"causality_description": null,
	},
	schema.TableActiveSkillSets: {
		"causality_conditions":    null,
		"ultimate_special_id":     null,
		"special_view_id":         null,
		"bgm_id":                  null,
		"costume_special_view_id": 0,
	},
	schema.TableActiveSkills: {
		"efficacy_values":        "{}",
		"sub_target_type_set_id": null,
		"thumb_effect_id":        null,
		"effect_se_id":           null,
	},
	schema.TableCardSpecials: {
		"causality_conditions":      null,
		"special_asset_id":          null,
		"priority":                  0,
		"lv_start":                  0,
		"card_costume_condition_id": 0,
		"special_bonus_id1":         0,
		"special_bonus_lv1":         0,
		"bonus_view_id1":            0,
		"special_bonus_id2":         0,
		"special_bonus_lv2":         0,
		"bonus_view_id2":            0,
		"style":                     "Normal",
		"eball_num_start":           12,
	},
	schema.TablePassiveSkillEffects: {
		"bgm_id": null,
	},
}

// Policy decides the value written for each column of a row.
type Policy struct {
	Timestamps types.TimestampPolicy
	Now        func() time.Time
}

// DefaultPolicy writes literal zero timestamps.
func DefaultPolicy() Policy {
	return Policy{Timestamps: types.TimestampZero, Now: time.Now}
}

// ValueFor returns the value to write for column, in priority order: the
// row's explicit value; the timestamp policy; the card's link list for
// link_skillN_id; the table default. It returns nil when nothing applies,
// which formats as NULL.
func (p Policy) ValueFor(table, column string, r *Row) any {
	if v, ok := r.Lookup(column); ok {
		if table == schema.TableCards && isLinkColumn(column) && v == "" {
			return nil
		}
		return v
	}

	switch column {
	case "open_at":
		return 0
	case "created_at", "updated_at":
		return p.timestamp()
	}

	if table == schema.TableCards && isLinkColumn(column) {
		return linkValue(column, r.LinkSkillIDs())
	}

	if v, ok := columnDefaults[table][column]; ok {
		if v == null {
			return nil
		}
		return v
	}
	return nil
}

func (p Policy) timestamp() any {
	if p.Timestamps != types.TimestampNow {
		return 0
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return FormatTimestamp(now())
}

func isLinkColumn(column string) bool {
	return strings.HasPrefix(column, "link_skill") && strings.HasSuffix(column, "_id")
}

// linkValue maps link_skillN_id to slot N of links. Empty slots and the "0"
// placeholder yield nil.
func linkValue(column string, links []string) any {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(column, "link_skill"), "_id"))
	if err != nil {
		return nil
	}
	f := types.CardForm{LinkSkillIDs: links}
	if id := f.LinkSkillID(n); id != "" {
		return id
	}
	return nil
}
