package sqlgen

import (
	"encoding/json"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Row is one entity flattened to column values for a single table. Only
// columns the entity actually supplies are present; the Policy fills the
// rest. Nil pointers and empty optional IDs are never stored, so they read
// as absent.
type Row struct {
	table  string
	values map[string]any
	links  []string
}

func newRow(table string) *Row {
	return &Row{table: table, values: make(map[string]any)}
}

// NewRow returns a row for table holding the given explicit values.
func NewRow(table string, values map[string]any) *Row {
	r := newRow(table)
	for k, v := range values {
		r.set(k, v)
	}
	return r
}

// Table returns the row's table name.
func (r *Row) Table() string { return r.table }

// Lookup returns the explicit value of column.
func (r *Row) Lookup(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// LinkSkillIDs returns the card's link list, or nil for other tables.
func (r *Row) LinkSkillIDs() []string { return r.links }

// MarshalJSON encodes the explicit values. It is used for warning comments.
func (r *Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.values)
}

func (r *Row) set(column string, v any) *Row {
	switch x := v.(type) {
	case nil:
		return r
	case *string:
		if x == nil {
			return r
		}
		v = *x
	case *int:
		if x == nil {
			return r
		}
		v = *x
	case *types.Scalar:
		if x == nil {
			return r
		}
		v = *x
	}
	r.values[column] = v
	return r
}

// setID stores a reference column, treating "" as absent.
func (r *Row) setID(column, id string) *Row {
	if id == "" {
		return r
	}
	r.values[column] = id
	return r
}

// CardRow flattens a card form. Link columns are not stored; the policy
// derives them from the link list.
func CardRow(f types.CardForm) *Row {
	r := newRow(schema.TableCards)
	r.links = f.LinkSkillIDs
	r.set("id", f.ID).
		set("name", f.Name).
		setID("character_id", f.CharacterID).
		setID("card_unique_info_id", f.CardUniqueInfoID).
		set("cost", f.Cost).
		set("rarity", f.Rarity).
		set("hp_init", f.HpInit).
		set("hp_max", f.HpMax).
		set("atk_init", f.AtkInit).
		set("atk_max", f.AtkMax).
		set("def_init", f.DefInit).
		set("def_max", f.DefMax).
		set("element", f.Element).
		set("lv_max", f.LvMax).
		set("skill_lv_max", f.SkillLvMax).
		set("grow_type", f.GrowType).
		set("price", f.Price).
		set("exp_type", f.ExpType).
		set("training_exp", f.TrainingExp).
		set("special_motion", f.SpecialMotion).
		setID("passive_skill_set_id", f.PassiveSkillSetID).
		setID("leader_skill_set_id", f.LeaderSkillSetID).
		set("eball_mod_min", f.EballModMin).
		set("eball_mod_num100", f.EballModNum100).
		set("eball_mod_mid", f.EballModMid).
		set("eball_mod_mid_num", f.EballModMidNum).
		set("eball_mod_max", f.EballModMax).
		set("eball_mod_max_num", f.EballModMaxNum).
		setID("max_level_reward_id", f.MaxLevelRewardID).
		setID("max_level_reward_type", f.MaxLevelRewardType).
		set("collectable_type", f.CollectableType).
		set("face_x", f.FaceX).
		set("face_y", f.FaceY).
		set("is_selling_only", f.IsSellingOnly).
		set("aura_id", f.AuraID).
		set("awakening_element_type", f.AwakeningElementType).
		set("potential_board_id", f.PotentialBoardID)
	return r
}

// UniqueInfoRow flattens a card_unique_infos entry.
func UniqueInfoRow(u types.CardUniqueInfo) *Row {
	return newRow(schema.TableCardUniqueInfos).
		set("id", u.ID).
		set("name", u.Name).
		set("kana", u.Kana)
}

// CategoryEntryRow flattens a card_card_categories entry.
func CategoryEntryRow(e types.CardCategoryEntry) *Row {
	return newRow(schema.TableCardCardCategories).
		set("id", e.ID).
		set("card_id", e.CardID).
		set("card_category_id", e.CardCategoryID).
		set("num", e.Num)
}

// LeaderSkillSetRow flattens the set columns only.
func LeaderSkillSetRow(s types.LeaderSkillSet) *Row {
	return newRow(schema.TableLeaderSkillSets).
		set("id", s.ID).
		set("name", s.Name).
		set("description", s.Description)
}

// LeaderSkillRow flattens a leader skill. The owning set's ID is taken from
// setID, not from the skill.
func LeaderSkillRow(setID string, s types.LeaderSkill) *Row {
	return newRow(schema.TableLeaderSkills).
		set("id", s.ID).
		set("leader_skill_set_id", setID).
		set("exec_timing_type", s.ExecTimingType).
		set("target_type", s.TargetType).
		set("sub_target_type_set_id", s.SubTargetTypeSetID).
		set("causality_conditions", s.CausalityConditions).
		set("efficacy_type", s.EfficacyType).
		set("efficacy_values", s.EfficacyValues).
		set("calc_option", s.CalcOption)
}

// PassiveSkillSetRow flattens the set columns only.
func PassiveSkillSetRow(s types.PassiveSkillSet) *Row {
	return newRow(schema.TablePassiveSkillSets).
		set("id", s.ID).
		set("name", s.Name).
		set("description", s.Description).
		set("itemized_description", s.ItemizedDescription)
}

// PassiveSkillRow flattens a passive skill.
func PassiveSkillRow(s types.PassiveSkill) *Row {
	return newRow(schema.TablePassiveSkills).
		set("id", s.ID).
		set("name", s.Name).
		set("description", s.Description).
		set("exec_timing_type", s.ExecTimingType).
		set("efficacy_type", s.EfficacyType).
		set("target_type", s.TargetType).
		set("sub_target_type_set_id", s.SubTargetTypeSetID).
		set("passive_skill_effect_id", s.PassiveSkillEffectID).
		set("calc_option", s.CalcOption).
		set("turn", s.Turn).
		set("is_once", s.IsOnce).
		set("probability", s.Probability).
		set("causality_conditions", s.CausalityConditions).
		set("eff_value1", s.EffValue1).
		set("eff_value2", s.EffValue2).
		set("eff_value3", s.EffValue3).
		set("efficacy_values", s.EfficacyValues)
}

// PassiveRelationRow links a passive skill to its set.
func PassiveRelationRow(setID, skillID string) *Row {
	return newRow(schema.TablePassiveSkillSetRelations).
		set("id", PassiveRelationID(setID, skillID)).
		set("passive_skill_set_id", setID).
		set("passive_skill_id", skillID)
}

// SpecialSetRow flattens the set columns only.
func SpecialSetRow(s types.SpecialSet) *Row {
	return newRow(schema.TableSpecialSets).
		set("id", s.ID).
		set("name", s.Name).
		set("description", s.Description).
		set("causality_description", s.CausalityDescription).
		set("aim_target", s.AimTarget).
		set("increase_rate", s.IncreaseRate).
		set("lv_bonus", s.LvBonus).
		set("is_inactive", s.IsInactive)
}

// SpecialRow flattens a special effect under setID.
func SpecialRow(setID string, s types.Special) *Row {
	return newRow(schema.TableSpecials).
		set("id", s.ID).
		set("special_set_id", setID).
		set("type", s.Type).
		set("efficacy_type", s.EfficacyType).
		set("target_type", s.TargetType).
		set("calc_option", s.CalcOption).
		set("turn", s.Turn).
		set("prob", s.Prob).
		set("causality_conditions", s.CausalityConditions).
		set("eff_value1", s.EffValue1).
		set("eff_value2", s.EffValue2).
		set("eff_value3", s.EffValue3)
}

// CardSpecialRow flattens a card_specials row.
func CardSpecialRow(c types.CardSpecial) *Row {
	r := newRow(schema.TableCardSpecials).
		set("id", c.ID).
		set("card_id", c.CardID).
		set("special_set_id", c.SpecialSetID).
		set("priority", c.Priority).
		set("lv_start", c.LvStart).
		set("eball_num_start", c.EballNumStart).
		set("view_id", c.ViewID).
		set("card_costume_condition_id", c.CardCostumeConditionID).
		set("special_bonus_id1", c.SpecialBonusID1).
		set("special_bonus_lv1", c.SpecialBonusLv1).
		set("bonus_view_id1", c.BonusViewID1).
		set("special_bonus_id2", c.SpecialBonusID2).
		set("special_bonus_lv2", c.SpecialBonusLv2).
		set("bonus_view_id2", c.BonusViewID2).
		set("causality_conditions", c.CausalityConditions).
		set("special_asset_id", c.SpecialAssetID)
	if c.Style != "" {
		r.set("style", c.Style)
	}
	return r
}

// ActiveSkillSetRow flattens the set columns only.
func ActiveSkillSetRow(s types.ActiveSkillSet) *Row {
	return newRow(schema.TableActiveSkillSets).
		set("id", s.ID).
		set("name", s.Name).
		set("effect_description", s.EffectDescription).
		set("condition_description", s.ConditionDescription).
		set("turn", s.Turn).
		set("exec_limit", s.ExecLimit).
		set("causality_conditions", s.CausalityConditions).
		set("ultimate_special_id", s.UltimateSpecialID).
		set("special_view_id", s.SpecialViewID).
		set("costume_special_view_id", s.CostumeSpecialViewID).
		set("bgm_id", s.BgmID)
}

// ActiveSkillRow flattens an active skill effect under setID.
func ActiveSkillRow(setID string, s types.ActiveSkillEffect) *Row {
	return newRow(schema.TableActiveSkills).
		set("id", s.ID).
		set("active_skill_set_id", setID).
		set("target_type", s.TargetType).
		set("sub_target_type_set_id", s.SubTargetTypeSetID).
		set("calc_option", s.CalcOption).
		set("efficacy_type", s.EfficacyType).
		set("eff_val1", s.EffVal1).
		set("eff_val2", s.EffVal2).
		set("eff_val3", s.EffVal3).
		set("efficacy_values", s.EfficacyValues).
		set("thumb_effect_id", s.ThumbEffectID).
		set("effect_se_id", s.EffectSeID)
}

// CardActiveSkillRow flattens a card_active_skills row.
func CardActiveSkillRow(c types.CardActiveSkill) *Row {
	return newRow(schema.TableCardActiveSkills).
		set("id", c.ID).
		set("card_id", c.CardID).
		set("active_skill_set_id", c.ActiveSkillSetID)
}

// PassiveSkillEffectRow flattens a passive_skill_effects row.
func PassiveSkillEffectRow(e types.PassiveSkillEffectEntry) *Row {
	return newRow(schema.TablePassiveSkillEffects).
		set("id", e.ID).
		set("script_name", e.ScriptName).
		set("lite_flicker_rate", e.LiteFlickerRate).
		set("bgm_id", e.BgmID)
}

// EffectPackRow flattens an effect_packs row.
func EffectPackRow(e types.EffectPackEntry) *Row {
	return newRow(schema.TableEffectPacks).
		set("id", e.ID).
		set("category", e.Category).
		set("name", e.Name).
		set("pack_name", e.PackName).
		set("scene_name", e.SceneName).
		set("red", e.Red).
		set("green", e.Green).
		set("blue", e.Blue).
		set("alpha", e.Alpha).
		set("lite_flicker_rate", e.LiteFlickerRate)
}

// GrowthRow flattens an optimal_awakening_growths row.
func GrowthRow(g types.OptimalAwakeningGrowth) *Row {
	return newRow(schema.TableOptimalAwakeningGrowths).
		set("id", g.ID).
		setID("growth_type_id", g.GrowthTypeID).
		set("val1_eza_marker", g.Val1EzaMarker).
		set("val2_max_level", g.Val2MaxLevel).
		set("val3_skill_lv_max", g.Val3SkillLvMax).
		setID("passive_skill_set_id", g.PassiveSkillSetID).
		setID("leader_skill_set_id", g.LeaderSkillSetID)
}
