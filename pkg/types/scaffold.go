package types

// Prefixes prepended to a card ID to derive the IDs of the rows created
// together with the card.
const (
	PrefixCardUniqueInfo  = "70"
	PrefixPassiveSkillSet = "71"
	PrefixLeaderSkillSet  = "72"
	PrefixActiveSkillSet  = "73"
	PrefixSpecialSet      = "74"
	PrefixGrowthID        = "75"
	PrefixGrowthTypeID    = "76"
)

// LocalIDChecker recognizes IDs that were allocated locally rather than
// imported from a game database.
type LocalIDChecker interface {
	IsLocal(id string) bool
}

// ScaffoldCardForm appends a new card form built from a fresh ID, together
// with its unique info, empty passive, leader, active and special sets, and
// a 12 ki CardSpecial row. Each derived ID is the card ID behind its prefix.
// IDs already taken in s are skipped.
func (s *PatchState) ScaffoldCardForm(ids IDSource) CardForm {
	id := ids.Next()
	for s.scaffoldTaken(id) {
		id = ids.Next()
	}
	var (
		uniqueID  = PrefixCardUniqueInfo + id
		passiveID = PrefixPassiveSkillSet + id
		leaderID  = PrefixLeaderSkillSet + id
		activeID  = PrefixActiveSkillSet + id
		specialID = PrefixSpecialSet + id
	)

	form := NewCardForm(id)
	form.Name = "New Card " + id
	form.CardUniqueInfoID = uniqueID
	form.PassiveSkillSetID = passiveID
	form.LeaderSkillSetID = leaderID
	form.ActiveSkillSetIDRef = activeID
	s.CardForms = append(s.CardForms, form)

	s.CardUniqueInfos = append(s.CardUniqueInfos, CardUniqueInfo{
		ID: uniqueID, Name: "Character Name for " + id,
	})
	s.PassiveSkillSets = append(s.PassiveSkillSets, PassiveSkillSet{
		ID: passiveID, Name: "Passive for " + id, Skills: []PassiveSkill{},
	})
	s.LeaderSkillSets = append(s.LeaderSkillSets, LeaderSkillSet{
		ID: leaderID, Name: "Leader for " + id, Skills: []LeaderSkill{},
	})
	s.ActiveSkillSets = append(s.ActiveSkillSets, ActiveSkillSet{
		ID: activeID, Name: "Active for " + id, Turn: 1, ExecLimit: 1, Skills: []ActiveSkillEffect{},
	})
	s.SpecialSets = append(s.SpecialSets, SpecialSet{
		ID: specialID, Name: "Special for " + id, IncreaseRate: 180, LvBonus: 25, Skills: []Special{},
	})
	row := NewCardSpecial(ids, id, specialID)
	for s.cardSpecialIndex(row.ID) >= 0 {
		row.ID = ids.Next()
	}
	s.CardSpecials = append(s.CardSpecials, row)
	return form
}

func (s *PatchState) scaffoldTaken(id string) bool {
	if s.cardFormIndex(id) >= 0 {
		return true
	}
	for _, cs := range s.CardSpecials {
		if cs.CardID == id {
			return true
		}
	}
	for _, u := range s.CardUniqueInfos {
		if u.ID == PrefixCardUniqueInfo+id {
			return true
		}
	}
	for _, set := range s.PassiveSkillSets {
		if set.ID == PrefixPassiveSkillSet+id {
			return true
		}
	}
	for _, set := range s.LeaderSkillSets {
		if set.ID == PrefixLeaderSkillSet+id {
			return true
		}
	}
	for _, set := range s.ActiveSkillSets {
		if set.ID == PrefixActiveSkillSet+id {
			return true
		}
	}
	for _, set := range s.SpecialSets {
		if set.ID == PrefixSpecialSet+id {
			return true
		}
	}
	return false
}

// RenameCardForm changes the ID of a card form. CardSpecial rows and the EZA
// base card follow the card. When oldID is local, the rows whose IDs were
// derived from it by prefix are re-keyed to newID as well, together with
// every reference to them; derived IDs that are not local stay as they are.
// It returns ErrNotFound for an unknown oldID and ErrInvalidID when newID is
// empty or taken by another form.
func (s *PatchState) RenameCardForm(oldID, newID string, local LocalIDChecker) error {
	i := s.cardFormIndex(oldID)
	if i < 0 {
		return ErrNotFound
	}
	if newID == oldID {
		return nil
	}
	if newID == "" || s.cardFormIndex(newID) >= 0 {
		return ErrInvalidID
	}

	if local.IsLocal(oldID) {
		s.rekeyDerived(oldID, newID, local)
	}
	s.CardForms[i].ID = newID
	for j := range s.CardSpecials {
		if s.CardSpecials[j].CardID == oldID {
			s.CardSpecials[j].CardID = newID
		}
	}
	if s.BaseCardIDForEZA == oldID {
		s.BaseCardIDForEZA = newID
	}
	return nil
}

// rekeyDerived moves every local prefix+oldID row to prefix+newID. It must
// run before BaseCardIDForEZA is updated.
func (s *PatchState) rekeyDerived(oldID, newID string, local LocalIDChecker) {
	derived := func(prefix string) (from, to string, ok bool) {
		from = prefix + oldID
		return from, prefix + newID, local.IsLocal(from)
	}
	swap := func(id *string, from, to string) {
		if *id == from {
			*id = to
		}
	}

	if from, to, ok := derived(PrefixCardUniqueInfo); ok {
		for j := range s.CardUniqueInfos {
			swap(&s.CardUniqueInfos[j].ID, from, to)
		}
		for j := range s.CardForms {
			swap(&s.CardForms[j].CardUniqueInfoID, from, to)
		}
	}

	if from, to, ok := derived(PrefixPassiveSkillSet); ok {
		for j := range s.PassiveSkillSets {
			swap(&s.PassiveSkillSets[j].ID, from, to)
		}
		for j := range s.CardForms {
			swap(&s.CardForms[j].PassiveSkillSetID, from, to)
		}
		if g := s.OptimalAwakeningGrowth; g != nil {
			swap(&g.PassiveSkillSetID, from, to)
		}
	}

	if from, to, ok := derived(PrefixLeaderSkillSet); ok {
		for j := range s.LeaderSkillSets {
			set := &s.LeaderSkillSets[j]
			if set.ID != from {
				continue
			}
			set.ID = to
			for k := range set.Skills {
				swap(&set.Skills[k].LeaderSkillSetID, from, to)
			}
		}
		for j := range s.CardForms {
			swap(&s.CardForms[j].LeaderSkillSetID, from, to)
		}
		if g := s.OptimalAwakeningGrowth; g != nil {
			swap(&g.LeaderSkillSetID, from, to)
		}
	}

	if from, to, ok := derived(PrefixActiveSkillSet); ok {
		for j := range s.ActiveSkillSets {
			set := &s.ActiveSkillSets[j]
			if set.ID != from {
				continue
			}
			set.ID = to
			for k := range set.Skills {
				swap(&set.Skills[k].ActiveSkillSetID, from, to)
			}
		}
		for j := range s.CardForms {
			swap(&s.CardForms[j].ActiveSkillSetIDRef, from, to)
		}
	}

	if from, to, ok := derived(PrefixSpecialSet); ok {
		for j := range s.SpecialSets {
			set := &s.SpecialSets[j]
			if set.ID != from {
				continue
			}
			set.ID = to
			for k := range set.Skills {
				swap(&set.Skills[k].SpecialSetID, from, to)
			}
		}
		for j := range s.CardSpecials {
			swap(&s.CardSpecials[j].SpecialSetID, from, to)
		}
		for j := range s.CardForms {
			swap(&s.CardForms[j].SpecialSetIDRef, from, to)
		}
	}

	if g := s.OptimalAwakeningGrowth; g != nil && s.BaseCardIDForEZA == oldID {
		if from, to, ok := derived(PrefixGrowthID); ok {
			swap(&g.ID, from, to)
		}
		if from, to, ok := derived(PrefixGrowthTypeID); ok {
			swap(&g.GrowthTypeID, from, to)
		}
	}
}
