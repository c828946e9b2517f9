package types

// LinkSlots is the number of link skill columns on a card row.
const LinkSlots = 7

// Element values. Super and Extreme variants add 10 and 20 to the neutral
// value, so 2, 12 and 22 are the three INT elements.
const (
	ElementAGL = 0
	ElementTEQ = 1
	ElementINT = 2
	ElementSTR = 3
	ElementPHY = 4

	ElementSuperOffset   = 10
	ElementExtremeOffset = 20
)

// Rarity values.
const (
	RaritySSR = 3
	RarityUR  = 4
	RarityLR  = 5
)

var elementNames = []string{"AGL", "TEQ", "INT", "STR", "PHY"}

// ElementName returns a display label such as "Super INT", or "" for an
// unknown value.
func ElementName(element int) string {
	if element < 0 || element >= ElementExtremeOffset+len(elementNames) {
		return ""
	}
	base := element % 10
	if base >= len(elementNames) {
		return ""
	}
	switch element / 10 {
	case 0:
		return elementNames[base]
	case 1:
		return "Super " + elementNames[base]
	default:
		return "Extreme " + elementNames[base]
	}
}

// RarityName returns "SSR", "UR" or "LR", or "" for other values.
func RarityName(rarity int) string {
	switch rarity {
	case RaritySSR:
		return "SSR"
	case RarityUR:
		return "UR"
	case RarityLR:
		return "LR"
	default:
		return ""
	}
}

// CardForm is one row of the cards table: one playable variant of a
// character. Links are kept as a fixed list of LinkSlots IDs where "" means
// an unused slot; categories are an ordered, variable-length list.
type CardForm struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	CharacterID      string `json:"character_id" yaml:"character_id"`
	CardUniqueInfoID string `json:"card_unique_info_id" yaml:"card_unique_info_id"`

	Cost       int `json:"cost" yaml:"cost"`
	Rarity     int `json:"rarity" yaml:"rarity"`
	HpInit     int `json:"hp_init" yaml:"hp_init"`
	HpMax      int `json:"hp_max" yaml:"hp_max"`
	AtkInit    int `json:"atk_init" yaml:"atk_init"`
	AtkMax     int `json:"atk_max" yaml:"atk_max"`
	DefInit    int `json:"def_init" yaml:"def_init"`
	DefMax     int `json:"def_max" yaml:"def_max"`
	Element    int `json:"element" yaml:"element"`
	LvMax      int `json:"lv_max" yaml:"lv_max"`
	SkillLvMax int `json:"skill_lv_max" yaml:"skill_lv_max"`
	GrowType   int `json:"grow_type" yaml:"grow_type"`

	Price         int `json:"price" yaml:"price"`
	ExpType       int `json:"exp_type" yaml:"exp_type"`
	TrainingExp   int `json:"training_exp" yaml:"training_exp"`
	SpecialMotion int `json:"special_motion" yaml:"special_motion"`

	PassiveSkillSetID string   `json:"passive_skill_set_id" yaml:"passive_skill_set_id"`
	LeaderSkillSetID  string   `json:"leader_skill_set_id" yaml:"leader_skill_set_id"`
	LinkSkillIDs      []string `json:"link_skill_ids" yaml:"link_skill_ids"`
	CategoryIDs       []string `json:"category_ids" yaml:"category_ids"`

	EballModMin    int `json:"eball_mod_min" yaml:"eball_mod_min"`
	EballModNum100 int `json:"eball_mod_num100" yaml:"eball_mod_num100"`
	EballModMid    int `json:"eball_mod_mid" yaml:"eball_mod_mid"`
	EballModMidNum int `json:"eball_mod_mid_num" yaml:"eball_mod_mid_num"`
	EballModMax    int `json:"eball_mod_max" yaml:"eball_mod_max"`
	EballModMaxNum int `json:"eball_mod_max_num" yaml:"eball_mod_max_num"`

	MaxLevelRewardID   string `json:"max_level_reward_id" yaml:"max_level_reward_id"`
	MaxLevelRewardType string `json:"max_level_reward_type" yaml:"max_level_reward_type"`
	CollectableType    int    `json:"collectable_type" yaml:"collectable_type"`
	FaceX              int    `json:"face_x" yaml:"face_x"`
	FaceY              int    `json:"face_y" yaml:"face_y"`
	IsSellingOnly      int    `json:"is_selling_only" yaml:"is_selling_only"`

	AuraID               *string `json:"aura_id,omitempty" yaml:"aura_id,omitempty"`
	AwakeningElementType *int    `json:"awakening_element_type,omitempty" yaml:"awakening_element_type,omitempty"`
	PotentialBoardID     *string `json:"potential_board_id,omitempty" yaml:"potential_board_id,omitempty"`

	// ActiveSkillSetIDRef names the ActiveSkillSet linked through
	// card_active_skills. The link row is derived when the patch is written.
	ActiveSkillSetIDRef string `json:"active_skill_set_id_ref,omitempty" yaml:"active_skill_set_id_ref,omitempty"`

	// SpecialSetIDRef is the special set of the card's first card_specials
	// row when the form was read from a database. Informational only: the
	// CardSpecial rows in PatchState are what gets written.
	SpecialSetIDRef string `json:"special_set_id_ref,omitempty" yaml:"special_set_id_ref,omitempty"`
}

// NewCardForm returns a card form with the editor defaults: UR rarity,
// level 120, skill level 10 and seven empty link slots.
func NewCardForm(id string) CardForm {
	return CardForm{
		ID:                 id,
		Rarity:             RarityUR,
		LvMax:              120,
		SkillLvMax:         10,
		LinkSkillIDs:       make([]string, LinkSlots),
		CategoryIDs:        []string{},
		MaxLevelRewardID:   "1",
		MaxLevelRewardType: "1",
		CollectableType:    1,
	}
}

// LinkSkillID returns the link skill in the 1-based slot n, or "" when the
// slot is unused, out of range, or holds the "0" placeholder.
func (c *CardForm) LinkSkillID(n int) string {
	if n < 1 || n > len(c.LinkSkillIDs) {
		return ""
	}
	id := c.LinkSkillIDs[n-1]
	if id == "0" {
		return ""
	}
	return id
}

// NormalizeLinks pads or truncates LinkSkillIDs to exactly LinkSlots entries.
func (c *CardForm) NormalizeLinks() {
	links := make([]string, LinkSlots)
	copy(links, c.LinkSkillIDs)
	c.LinkSkillIDs = links
}

// CardUniqueInfo is the character display name shared by a character's forms.
type CardUniqueInfo struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Kana *string `json:"kana,omitempty" yaml:"kana,omitempty"`
}

// CardCategoryEntry is one card_card_categories row. It is derived from
// CardForm.CategoryIDs when a patch is written.
type CardCategoryEntry struct {
	ID             string `json:"id" yaml:"id"`
	CardID         string `json:"card_id" yaml:"card_id"`
	CardCategoryID string `json:"card_category_id" yaml:"card_category_id"`
	Num            int    `json:"num" yaml:"num"`
}

// CardActiveSkill is one card_active_skills row, derived from
// CardForm.ActiveSkillSetIDRef.
type CardActiveSkill struct {
	ID               string `json:"id" yaml:"id"`
	CardID           string `json:"card_id" yaml:"card_id"`
	ActiveSkillSetID string `json:"active_skill_set_id" yaml:"active_skill_set_id"`
}

// CardSpecial links a card to a special set with per-card overrides. A card
// may have several rows, e.g. one for the 12 ki and one for the 18 ki attack.
type CardSpecial struct {
	ID                     string  `json:"id" yaml:"id"`
	CardID                 string  `json:"card_id" yaml:"card_id"`
	SpecialSetID           string  `json:"special_set_id" yaml:"special_set_id"`
	Priority               int     `json:"priority" yaml:"priority"`
	Style                  string  `json:"style" yaml:"style"`
	LvStart                int     `json:"lv_start" yaml:"lv_start"`
	EballNumStart          int     `json:"eball_num_start" yaml:"eball_num_start"`
	ViewID                 int     `json:"view_id" yaml:"view_id"`
	CardCostumeConditionID int     `json:"card_costume_condition_id" yaml:"card_costume_condition_id"`
	SpecialBonusID1        int     `json:"special_bonus_id1" yaml:"special_bonus_id1"`
	SpecialBonusLv1        int     `json:"special_bonus_lv1" yaml:"special_bonus_lv1"`
	BonusViewID1           int     `json:"bonus_view_id1" yaml:"bonus_view_id1"`
	SpecialBonusID2        int     `json:"special_bonus_id2" yaml:"special_bonus_id2"`
	SpecialBonusLv2        int     `json:"special_bonus_lv2" yaml:"special_bonus_lv2"`
	BonusViewID2           int     `json:"bonus_view_id2" yaml:"bonus_view_id2"`
	CausalityConditions    *string `json:"causality_conditions,omitempty" yaml:"causality_conditions,omitempty"`
	SpecialAssetID         *string `json:"special_asset_id,omitempty" yaml:"special_asset_id,omitempty"`
}

// IDSource hands out fresh identifiers for new rows.
type IDSource interface {
	Next() string
}

// NewCardSpecial returns a 12 ki "Normal" special row for cardID with a
// freshly allocated row ID.
func NewCardSpecial(ids IDSource, cardID, specialSetID string) CardSpecial {
	return CardSpecial{
		ID:            ids.Next(),
		CardID:        cardID,
		SpecialSetID:  specialSetID,
		Style:         "Normal",
		LvStart:       1,
		EballNumStart: 12,
	}
}

// CardBasicInfo is one search hit.
type CardBasicInfo struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Rarity  int    `json:"rarity" yaml:"rarity"`
	Element int    `json:"element" yaml:"element"`
}

// IDKind restricts a search by the first character of the card ID.
type IDKind string

// ID kinds. Base forms conventionally start with "1".
const (
	IDKindAll         IDKind = "all"
	IDKindBase        IDKind = "base"
	IDKindTransformed IDKind = "transformed"
)

// SearchFilter narrows a card search. Nil pointers disable the filter.
type SearchFilter struct {
	Element *int
	Rarity  *int
	Kind    IDKind
}
