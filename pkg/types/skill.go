package types

// Effect rows are opaque payload: enums, parameters and condition JSON are
// passed through to SQL without interpretation.

// PassiveSkill is one passive_skills row. Passive skills do not embed their
// set ID; membership is stored in passive_skill_set_relations.
type PassiveSkill struct {
	ID                   string  `json:"id" yaml:"id"`
	Name                 string  `json:"name" yaml:"name"`
	Description          string  `json:"description" yaml:"description"`
	ExecTimingType       int     `json:"exec_timing_type" yaml:"exec_timing_type"`
	EfficacyType         int     `json:"efficacy_type" yaml:"efficacy_type"`
	TargetType           int     `json:"target_type" yaml:"target_type"`
	SubTargetTypeSetID   *string `json:"sub_target_type_set_id,omitempty" yaml:"sub_target_type_set_id,omitempty"`
	PassiveSkillEffectID *string `json:"passive_skill_effect_id,omitempty" yaml:"passive_skill_effect_id,omitempty"`
	CalcOption           int     `json:"calc_option" yaml:"calc_option"`
	Turn                 int     `json:"turn" yaml:"turn"`
	IsOnce               int     `json:"is_once" yaml:"is_once"`
	Probability          int     `json:"probability" yaml:"probability"`
	CausalityConditions  *string `json:"causality_conditions,omitempty" yaml:"causality_conditions,omitempty"`
	EffValue1            *Scalar `json:"eff_value1,omitempty" yaml:"eff_value1,omitempty"`
	EffValue2            *Scalar `json:"eff_value2,omitempty" yaml:"eff_value2,omitempty"`
	EffValue3            *Scalar `json:"eff_value3,omitempty" yaml:"eff_value3,omitempty"`
	EfficacyValues       *string `json:"efficacy_values,omitempty" yaml:"efficacy_values,omitempty"`
}

// NewPassiveSkill returns a passive skill with the editor defaults.
func NewPassiveSkill(id string) PassiveSkill {
	return PassiveSkill{
		ID:             id,
		ExecTimingType: 1,
		EfficacyType:   1,
		TargetType:     1,
		CalcOption:     2,
		Turn:           1,
		Probability:    100,
		EffValue1:      NumPtr(0),
		EffValue2:      NumPtr(0),
		EffValue3:      NumPtr(0),
		EfficacyValues: ptr("{}"),
	}
}

// PassiveSkillSet is a named group of passive skills.
type PassiveSkillSet struct {
	ID                  string         `json:"id" yaml:"id"`
	Name                string         `json:"name" yaml:"name"`
	Description         string         `json:"description" yaml:"description"`
	ItemizedDescription *string        `json:"itemized_description,omitempty" yaml:"itemized_description,omitempty"`
	Skills              []PassiveSkill `json:"skills" yaml:"skills"`
}

// LeaderSkill is one leader_skills row.
type LeaderSkill struct {
	ID                  string  `json:"id" yaml:"id"`
	LeaderSkillSetID    string  `json:"leader_skill_set_id" yaml:"leader_skill_set_id"`
	ExecTimingType      int     `json:"exec_timing_type" yaml:"exec_timing_type"`
	TargetType          int     `json:"target_type" yaml:"target_type"`
	SubTargetTypeSetID  *string `json:"sub_target_type_set_id,omitempty" yaml:"sub_target_type_set_id,omitempty"`
	CausalityConditions *string `json:"causality_conditions,omitempty" yaml:"causality_conditions,omitempty"`
	EfficacyType        int     `json:"efficacy_type" yaml:"efficacy_type"`
	EfficacyValues      string  `json:"efficacy_values" yaml:"efficacy_values"`
	CalcOption          int     `json:"calc_option" yaml:"calc_option"`
}

// NewLeaderSkill returns a leader skill with the editor defaults (+3 ki to
// all allies).
func NewLeaderSkill(id, setID string) LeaderSkill {
	return LeaderSkill{
		ID:               id,
		LeaderSkillSetID: setID,
		ExecTimingType:   1,
		TargetType:       2,
		EfficacyType:     5,
		EfficacyValues:   "[3,0,0]",
	}
}

// LeaderSkillSet is a named group of leader skills.
type LeaderSkillSet struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Skills      []LeaderSkill `json:"skills" yaml:"skills"`
}

// Special is one specials row.
type Special struct {
	ID                  string  `json:"id" yaml:"id"`
	SpecialSetID        string  `json:"special_set_id" yaml:"special_set_id"`
	Type                string  `json:"type" yaml:"type"`
	EfficacyType        int     `json:"efficacy_type" yaml:"efficacy_type"`
	TargetType          int     `json:"target_type" yaml:"target_type"`
	CalcOption          int     `json:"calc_option" yaml:"calc_option"`
	Turn                int     `json:"turn" yaml:"turn"`
	Prob                int     `json:"prob" yaml:"prob"`
	CausalityConditions *string `json:"causality_conditions,omitempty" yaml:"causality_conditions,omitempty"`
	EffValue1           *Scalar `json:"eff_value1,omitempty" yaml:"eff_value1,omitempty"`
	EffValue2           *Scalar `json:"eff_value2,omitempty" yaml:"eff_value2,omitempty"`
	EffValue3           *Scalar `json:"eff_value3,omitempty" yaml:"eff_value3,omitempty"`
}

// SpecialTypeNormal is the type of a plain efficacy special.
const SpecialTypeNormal = "Special::NormalEfficacySpecial"

// NewSpecial returns a special effect with the editor defaults.
func NewSpecial(id, setID string) Special {
	return Special{
		ID:           id,
		SpecialSetID: setID,
		Type:         SpecialTypeNormal,
		EfficacyType: 1,
		TargetType:   3,
		CalcOption:   2,
		Turn:         1,
		Prob:         100,
		EffValue1:    NumPtr(0),
		EffValue2:    NumPtr(0),
		EffValue3:    NumPtr(0),
	}
}

// SpecialSet is a super attack definition and its effect rows.
type SpecialSet struct {
	ID                   string    `json:"id" yaml:"id"`
	Name                 string    `json:"name" yaml:"name"`
	Description          string    `json:"description" yaml:"description"`
	CausalityDescription *string   `json:"causality_description,omitempty" yaml:"causality_description,omitempty"`
	AimTarget            int       `json:"aim_target" yaml:"aim_target"`
	IncreaseRate         int       `json:"increase_rate" yaml:"increase_rate"`
	LvBonus              int       `json:"lv_bonus" yaml:"lv_bonus"`
	IsInactive           int       `json:"is_inactive" yaml:"is_inactive"`
	Skills               []Special `json:"skills" yaml:"skills"`
}

// ActiveSkillEffect is one active_skills row.
type ActiveSkillEffect struct {
	ID                 string  `json:"id" yaml:"id"`
	ActiveSkillSetID   string  `json:"active_skill_set_id" yaml:"active_skill_set_id"`
	TargetType         int     `json:"target_type" yaml:"target_type"`
	SubTargetTypeSetID *string `json:"sub_target_type_set_id,omitempty" yaml:"sub_target_type_set_id,omitempty"`
	CalcOption         int     `json:"calc_option" yaml:"calc_option"`
	EfficacyType       int     `json:"efficacy_type" yaml:"efficacy_type"`
	EffVal1            *Scalar `json:"eff_val1,omitempty" yaml:"eff_val1,omitempty"`
	EffVal2            *Scalar `json:"eff_val2,omitempty" yaml:"eff_val2,omitempty"`
	EffVal3            *Scalar `json:"eff_val3,omitempty" yaml:"eff_val3,omitempty"`
	EfficacyValues     *string `json:"efficacy_values,omitempty" yaml:"efficacy_values,omitempty"`
	ThumbEffectID      *int    `json:"thumb_effect_id,omitempty" yaml:"thumb_effect_id,omitempty"`
	EffectSeID         *int    `json:"effect_se_id,omitempty" yaml:"effect_se_id,omitempty"`
}

// NewActiveSkillEffect returns an active skill effect with the editor
// defaults.
func NewActiveSkillEffect(id, setID string) ActiveSkillEffect {
	return ActiveSkillEffect{
		ID:               id,
		ActiveSkillSetID: setID,
		TargetType:       1,
		CalcOption:       2,
		EfficacyType:     1,
		EffVal1:          NumPtr(0),
		EffVal2:          NumPtr(0),
		EffVal3:          NumPtr(0),
		EfficacyValues:   ptr("{}"),
	}
}

// ActiveSkillSet is an active skill and its effect rows.
type ActiveSkillSet struct {
	ID                   string              `json:"id" yaml:"id"`
	Name                 string              `json:"name" yaml:"name"`
	EffectDescription    string              `json:"effect_description" yaml:"effect_description"`
	ConditionDescription string              `json:"condition_description" yaml:"condition_description"`
	Turn                 int                 `json:"turn" yaml:"turn"`
	ExecLimit            int                 `json:"exec_limit" yaml:"exec_limit"`
	CausalityConditions  *string             `json:"causality_conditions,omitempty" yaml:"causality_conditions,omitempty"`
	UltimateSpecialID    *int                `json:"ultimate_special_id,omitempty" yaml:"ultimate_special_id,omitempty"`
	SpecialViewID        *int                `json:"special_view_id,omitempty" yaml:"special_view_id,omitempty"`
	CostumeSpecialViewID *int                `json:"costume_special_view_id,omitempty" yaml:"costume_special_view_id,omitempty"`
	BgmID                *int                `json:"bgm_id,omitempty" yaml:"bgm_id,omitempty"`
	Skills               []ActiveSkillEffect `json:"skills" yaml:"skills"`
}

// OptimalAwakeningGrowth describes an in-place re-awakening of an existing
// card. It is written as one optimal_awakening_growths row plus an UPDATE of
// the base card.
type OptimalAwakeningGrowth struct {
	ID                string `json:"id" yaml:"id"`
	GrowthTypeID      string `json:"growth_type_id" yaml:"growth_type_id"`
	Val1EzaMarker     int    `json:"val1_eza_marker" yaml:"val1_eza_marker"`
	Val2MaxLevel      int    `json:"val2_max_level" yaml:"val2_max_level"`
	Val3SkillLvMax    int    `json:"val3_skill_lv_max" yaml:"val3_skill_lv_max"`
	PassiveSkillSetID string `json:"passive_skill_set_id" yaml:"passive_skill_set_id"`
	LeaderSkillSetID  string `json:"leader_skill_set_id" yaml:"leader_skill_set_id"`
}

// PassiveSkillEffectEntry is a passive_skill_effects row, written verbatim.
type PassiveSkillEffectEntry struct {
	ID              string `json:"id" yaml:"id"`
	ScriptName      string `json:"script_name" yaml:"script_name"`
	LiteFlickerRate int    `json:"lite_flicker_rate" yaml:"lite_flicker_rate"`
	BgmID           *int   `json:"bgm_id,omitempty" yaml:"bgm_id,omitempty"`
}

// EffectPackEntry is an effect_packs row, written verbatim.
type EffectPackEntry struct {
	ID              string `json:"id" yaml:"id"`
	Category        int    `json:"category" yaml:"category"`
	Name            string `json:"name" yaml:"name"`
	PackName        string `json:"pack_name" yaml:"pack_name"`
	SceneName       string `json:"scene_name" yaml:"scene_name"`
	Red             int    `json:"red" yaml:"red"`
	Green           int    `json:"green" yaml:"green"`
	Blue            int    `json:"blue" yaml:"blue"`
	Alpha           int    `json:"alpha" yaml:"alpha"`
	LiteFlickerRate int    `json:"lite_flicker_rate" yaml:"lite_flicker_rate"`
}

func ptr[T any](v T) *T { return &v }
