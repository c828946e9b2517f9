package sqlite

import (
	"strings"

	"github.com/mesh-intelligence/patchmaker/internal/pair"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// FetchCharacter loads the character that cardID belongs to: both the "0"
// and "1" forms when they exist, merged into one PatchState. If neither
// sibling exists cardID is loaded on its own. It returns types.ErrNotFound
// when no card matches at all.
func (s *Store) FetchCharacter(cardID string) (*types.PatchState, error) {
	return pair.Resolve(cardID, s.FetchForm)
}

// FetchForm loads exactly one card row and everything it references. It
// returns (nil, nil) when the card does not exist. Missing referenced rows
// are skipped, except a missing unique info which is replaced by a
// placeholder named after the card.
func (s *Store) FetchForm(cardID string) (*types.PatchState, error) {
	card, err := s.queryOne("card by id", "SELECT * FROM cards WHERE id = ?", cardID)
	if err != nil || card == nil {
		return nil, err
	}

	state := types.NewPatchState()
	form := cardForm(card)

	if info, err := s.uniqueInfo(card); err != nil {
		return nil, err
	} else if info != nil {
		state.CardUniqueInfos = append(state.CardUniqueInfos, *info)
	}

	cats, err := s.query("card categories",
		"SELECT card_category_id FROM card_card_categories WHERE card_id = ? ORDER BY num", cardID)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		form.CategoryIDs = append(form.CategoryIDs, str(c["card_category_id"]))
	}

	if truthy(card["passive_skill_set_id"]) {
		set, err := s.passiveSkillSet(card["passive_skill_set_id"])
		if err != nil {
			return nil, err
		}
		if set != nil {
			state.PassiveSkillSets = append(state.PassiveSkillSets, *set)
		}
	}

	if truthy(card["leader_skill_set_id"]) {
		set, err := s.leaderSkillSet(card["leader_skill_set_id"])
		if err != nil {
			return nil, err
		}
		if set != nil {
			state.LeaderSkillSets = append(state.LeaderSkillSets, *set)
		}
	}

	specials, err := s.query("card specials",
		"SELECT * FROM card_specials WHERE card_id = ? ORDER BY priority, eball_num_start", cardID)
	if err != nil {
		return nil, err
	}
	seenSet := make(map[string]bool)
	for _, row := range specials {
		cs := cardSpecial(row)
		state.CardSpecials = append(state.CardSpecials, cs)
		if form.SpecialSetIDRef == "" {
			form.SpecialSetIDRef = cs.SpecialSetID
		}
		if cs.SpecialSetID == "" || seenSet[cs.SpecialSetID] {
			continue
		}
		seenSet[cs.SpecialSetID] = true
		set, err := s.specialSet(cs.SpecialSetID)
		if err != nil {
			return nil, err
		}
		if set != nil {
			state.SpecialSets = append(state.SpecialSets, *set)
		}
	}

	link, err := s.queryOne("card active skill",
		"SELECT * FROM card_active_skills WHERE card_id = ? LIMIT 1", cardID)
	if err != nil {
		return nil, err
	}
	if link != nil && truthy(link["active_skill_set_id"]) {
		form.ActiveSkillSetIDRef = str(link["active_skill_set_id"])
		set, err := s.activeSkillSet(link["active_skill_set_id"])
		if err != nil {
			return nil, err
		}
		if set != nil {
			state.ActiveSkillSets = append(state.ActiveSkillSets, *set)
		}
	}

	state.CardForms = append(state.CardForms, form)
	return state, nil
}

func cardForm(row map[string]any) types.CardForm {
	f := types.NewCardForm(str(row["id"]))
	f.Name = strOr(row["name"], "")
	f.CharacterID = str(row["character_id"])
	f.CardUniqueInfoID = str(row["card_unique_info_id"])
	f.Cost = intOr(row["cost"], 0)
	f.Rarity = intOr(row["rarity"], types.RarityUR)
	f.HpInit = intOr(row["hp_init"], 0)
	f.HpMax = intOr(row["hp_max"], 0)
	f.AtkInit = intOr(row["atk_init"], 0)
	f.AtkMax = intOr(row["atk_max"], 0)
	f.DefInit = intOr(row["def_init"], 0)
	f.DefMax = intOr(row["def_max"], 0)
	f.Element = intOr(row["element"], 0)
	f.LvMax = intOr(row["lv_max"], 120)
	f.SkillLvMax = intOr(row["skill_lv_max"], 10)
	f.GrowType = intOr(row["grow_type"], 0)
	f.Price = intOr(row["price"], 0)
	f.ExpType = intOr(row["exp_type"], 0)
	f.TrainingExp = intOr(row["training_exp"], 0)
	f.SpecialMotion = intOr(row["special_motion"], 0)
	if truthy(row["passive_skill_set_id"]) {
		f.PassiveSkillSetID = str(row["passive_skill_set_id"])
	}
	if truthy(row["leader_skill_set_id"]) {
		f.LeaderSkillSetID = str(row["leader_skill_set_id"])
	}
	f.LinkSkillIDs = linkIDs(row)
	f.EballModMin = intOr(row["eball_mod_min"], 0)
	f.EballModNum100 = intOr(row["eball_mod_num100"], 0)
	f.EballModMid = intOr(row["eball_mod_mid"], 0)
	f.EballModMidNum = intOr(row["eball_mod_mid_num"], 0)
	f.EballModMax = intOr(row["eball_mod_max"], 0)
	f.EballModMaxNum = intOr(row["eball_mod_max_num"], 0)
	if truthy(row["max_level_reward_id"]) {
		f.MaxLevelRewardID = str(row["max_level_reward_id"])
	}
	if truthy(row["max_level_reward_type"]) {
		f.MaxLevelRewardType = str(row["max_level_reward_type"])
	}
	f.CollectableType = intOr(row["collectable_type"], 1)
	f.FaceX = intOr(row["face_x"], 0)
	f.FaceY = intOr(row["face_y"], 0)
	f.IsSellingOnly = intOr(row["is_selling_only"], 0)
	f.AuraID = optStr(row["aura_id"])
	f.AwakeningElementType = nullableInt(row["awakening_element_type"])
	f.PotentialBoardID = optStr(row["potential_board_id"])
	return f
}

func (s *Store) uniqueInfo(card map[string]any) (*types.CardUniqueInfo, error) {
	ref := card["card_unique_info_id"]
	if !truthy(ref) {
		return nil, nil
	}
	row, err := s.queryOne("card unique info", "SELECT * FROM card_unique_infos WHERE id = ?", ref)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return &types.CardUniqueInfo{
			ID:   str(row["id"]),
			Name: strOr(row["name"], ""),
			Kana: optStr(row["kana"]),
		}, nil
	}
	name := str(card["name"])
	if name == "" {
		name = "Unique Info for " + str(card["id"])
	}
	s.log.Debug("unique info missing, using placeholder")
	return &types.CardUniqueInfo{ID: str(ref), Name: name}, nil
}

func (s *Store) passiveSkillSet(id any) (*types.PassiveSkillSet, error) {
	row, err := s.queryOne("passive skill set", "SELECT * FROM passive_skill_sets WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	set := &types.PassiveSkillSet{
		ID:                  str(row["id"]),
		Name:                strOr(row["name"], ""),
		Description:         strOr(row["description"], ""),
		ItemizedDescription: optStr(row["itemized_description"]),
		Skills:              []types.PassiveSkill{},
	}

	rels, err := s.query("passive skill relations",
		"SELECT passive_skill_id FROM passive_skill_set_relations WHERE passive_skill_set_id = ? ORDER BY passive_skill_id", row["id"])
	if err != nil {
		return nil, err
	}
	var ids []any
	for _, r := range rels {
		if id := strings.TrimSpace(str(r["passive_skill_id"])); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return set, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	skills, err := s.query("passive skills",
		"SELECT * FROM passive_skills WHERE id IN ("+placeholders+") ORDER BY id", ids...)
	if err != nil {
		return nil, err
	}
	for _, r := range skills {
		set.Skills = append(set.Skills, passiveSkill(r))
	}
	return set, nil
}

func passiveSkill(r map[string]any) types.PassiveSkill {
	return types.PassiveSkill{
		ID:                   str(r["id"]),
		Name:                 strOr(r["name"], ""),
		Description:          strOr(r["description"], ""),
		ExecTimingType:       intOr(r["exec_timing_type"], 0),
		EfficacyType:         intOr(r["efficacy_type"], 0),
		TargetType:           intOr(r["target_type"], 0),
		SubTargetTypeSetID:   optStr(r["sub_target_type_set_id"]),
		PassiveSkillEffectID: optStr(r["passive_skill_effect_id"]),
		CalcOption:           intOr(r["calc_option"], 0),
		Turn:                 intOr(r["turn"], 0),
		IsOnce:               intOr(r["is_once"], 0),
		Probability:          intOr(r["probability"], 100),
		CausalityConditions:  optStr(r["causality_conditions"]),
		EffValue1:            scalar(r["eff_value1"]),
		EffValue2:            scalar(r["eff_value2"]),
		EffValue3:            scalar(r["eff_value3"]),
		EfficacyValues:       ptr(strOr(r["efficacy_values"], "{}")),
	}
}

func (s *Store) leaderSkillSet(id any) (*types.LeaderSkillSet, error) {
	row, err := s.queryOne("leader skill set", "SELECT * FROM leader_skill_sets WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	setID := str(row["id"])
	set := &types.LeaderSkillSet{
		ID:          setID,
		Name:        strOr(row["name"], ""),
		Description: strOr(row["description"], ""),
		Skills:      []types.LeaderSkill{},
	}
	skills, err := s.query("leader skills",
		"SELECT * FROM leader_skills WHERE leader_skill_set_id = ? ORDER BY id", row["id"])
	if err != nil {
		return nil, err
	}
	for _, r := range skills {
		set.Skills = append(set.Skills, types.LeaderSkill{
			ID:                  str(r["id"]),
			LeaderSkillSetID:    setID,
			ExecTimingType:      intOr(r["exec_timing_type"], 0),
			TargetType:          intOr(r["target_type"], 0),
			SubTargetTypeSetID:  optStr(r["sub_target_type_set_id"]),
			CausalityConditions: optStr(r["causality_conditions"]),
			EfficacyType:        intOr(r["efficacy_type"], 0),
			EfficacyValues:      strOr(r["efficacy_values"], "[]"),
			CalcOption:          intOr(r["calc_option"], 0),
		})
	}
	return set, nil
}

func cardSpecial(r map[string]any) types.CardSpecial {
	return types.CardSpecial{
		ID:                     str(r["id"]),
		CardID:                 str(r["card_id"]),
		SpecialSetID:           str(r["special_set_id"]),
		Priority:               intOr(r["priority"], 0),
		Style:                  strOr(r["style"], "Normal"),
		LvStart:                intOr(r["lv_start"], 1),
		EballNumStart:          intOr(r["eball_num_start"], 12),
		ViewID:                 intOr(r["view_id"], 0),
		CardCostumeConditionID: intOr(r["card_costume_condition_id"], 0),
		SpecialBonusID1:        intOr(r["special_bonus_id1"], 0),
		SpecialBonusLv1:        intOr(r["special_bonus_lv1"], 0),
		BonusViewID1:           intOr(r["bonus_view_id1"], 0),
		SpecialBonusID2:        intOr(r["special_bonus_id2"], 0),
		SpecialBonusLv2:        intOr(r["special_bonus_lv2"], 0),
		BonusViewID2:           intOr(r["bonus_view_id2"], 0),
		CausalityConditions:    optStr(r["causality_conditions"]),
		SpecialAssetID:         optStr(r["special_asset_id"]),
	}
}

func (s *Store) specialSet(id string) (*types.SpecialSet, error) {
	row, err := s.queryOne("special set", "SELECT * FROM special_sets WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	set := &types.SpecialSet{
		ID:                   id,
		Name:                 strOr(row["name"], ""),
		Description:          strOr(row["description"], ""),
		CausalityDescription: optStr(row["causality_description"]),
		AimTarget:            intOr(row["aim_target"], 0),
		IncreaseRate:         intOr(row["increase_rate"], 0),
		LvBonus:              intOr(row["lv_bonus"], 0),
		IsInactive:           intOr(row["is_inactive"], 0),
		Skills:               []types.Special{},
	}
	skills, err := s.query("specials", "SELECT * FROM specials WHERE special_set_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	for _, r := range skills {
		set.Skills = append(set.Skills, types.Special{
			ID:                  str(r["id"]),
			SpecialSetID:        id,
			Type:                strOr(r["type"], types.SpecialTypeNormal),
			EfficacyType:        intOr(r["efficacy_type"], 0),
			TargetType:          intOr(r["target_type"], 0),
			CalcOption:          intOr(r["calc_option"], 0),
			Turn:                intOr(r["turn"], 1),
			Prob:                intOr(r["prob"], 100),
			CausalityConditions: optStr(r["causality_conditions"]),
			EffValue1:           scalar(r["eff_value1"]),
			EffValue2:           scalar(r["eff_value2"]),
			EffValue3:           scalar(r["eff_value3"]),
		})
	}
	return set, nil
}

func (s *Store) activeSkillSet(id any) (*types.ActiveSkillSet, error) {
	row, err := s.queryOne("active skill set", "SELECT * FROM active_skill_sets WHERE id = ?", id)
	if err != nil || row == nil {
		return nil, err
	}
	setID := str(row["id"])
	set := &types.ActiveSkillSet{
		ID:                   setID,
		Name:                 strOr(row["name"], ""),
		EffectDescription:    strOr(row["effect_description"], ""),
		ConditionDescription: strOr(row["condition_description"], ""),
		Turn:                 intOr(row["turn"], 0),
		ExecLimit:            intOr(row["exec_limit"], 0),
		CausalityConditions:  optStr(row["causality_conditions"]),
		UltimateSpecialID:    optInt(row["ultimate_special_id"]),
		SpecialViewID:        optInt(row["special_view_id"]),
		CostumeSpecialViewID: optInt(row["costume_special_view_id"]),
		BgmID:                optInt(row["bgm_id"]),
		Skills:               []types.ActiveSkillEffect{},
	}
	skills, err := s.query("active skills",
		"SELECT * FROM active_skills WHERE active_skill_set_id = ? ORDER BY id", row["id"])
	if err != nil {
		return nil, err
	}
	for _, r := range skills {
		set.Skills = append(set.Skills, types.ActiveSkillEffect{
			ID:                 str(r["id"]),
			ActiveSkillSetID:   setID,
			TargetType:         intOr(r["target_type"], 0),
			SubTargetTypeSetID: optStr(r["sub_target_type_set_id"]),
			CalcOption:         intOr(r["calc_option"], 0),
			EfficacyType:       intOr(r["efficacy_type"], 0),
			EffVal1:            scalar(r["eff_val1"]),
			EffVal2:            scalar(r["eff_val2"]),
			EffVal3:            scalar(r["eff_val3"]),
			EfficacyValues:     ptr(strOr(r["efficacy_values"], "{}")),
			ThumbEffectID:      optInt(r["thumb_effect_id"]),
			EffectSeID:         optInt(r["effect_se_id"]),
		})
	}
	return set, nil
}

func ptr[T any](v T) *T { return &v }
