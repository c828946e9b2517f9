package types

// PatchState is the aggregate edited by the user and serialized into a SQL
// patch. Collections are ordered; emission follows slice order.
type PatchState struct {
	CardForms           []CardForm                `json:"cardForms" yaml:"cardForms"`
	CardUniqueInfos     []CardUniqueInfo          `json:"cardUniqueInfos" yaml:"cardUniqueInfos"`
	PassiveSkillSets    []PassiveSkillSet         `json:"passiveSkillSets" yaml:"passiveSkillSets"`
	LeaderSkillSets     []LeaderSkillSet          `json:"leaderSkillSets" yaml:"leaderSkillSets"`
	SpecialSets         []SpecialSet              `json:"specialSets" yaml:"specialSets"`
	ActiveSkillSets     []ActiveSkillSet          `json:"activeSkillSets" yaml:"activeSkillSets"`
	CardSpecials        []CardSpecial             `json:"cardSpecials" yaml:"cardSpecials"`
	PassiveSkillEffects []PassiveSkillEffectEntry `json:"passiveSkillEffects" yaml:"passiveSkillEffects"`
	EffectPacks         []EffectPackEntry         `json:"effectPacks" yaml:"effectPacks"`

	IsEZA                  bool                    `json:"isEZA" yaml:"isEZA"`
	BaseCardIDForEZA       string                  `json:"baseCardIdForEZA,omitempty" yaml:"baseCardIdForEZA,omitempty"`
	OptimalAwakeningGrowth *OptimalAwakeningGrowth `json:"optimalAwakeningGrowth,omitempty" yaml:"optimalAwakeningGrowth,omitempty"`
}

// NewPatchState returns an empty state with non-nil collections.
func NewPatchState() *PatchState {
	s := &PatchState{}
	s.Normalize()
	return s
}

// Normalize replaces nil collections with empty ones and pads every card
// form's link list to exactly LinkSlots entries. It is safe to call on a
// state decoded from a document with missing keys.
func (s *PatchState) Normalize() {
	if s.CardForms == nil {
		s.CardForms = []CardForm{}
	}
	for i := range s.CardForms {
		s.CardForms[i].NormalizeLinks()
		if s.CardForms[i].CategoryIDs == nil {
			s.CardForms[i].CategoryIDs = []string{}
		}
	}
	if s.CardUniqueInfos == nil {
		s.CardUniqueInfos = []CardUniqueInfo{}
	}
	if s.PassiveSkillSets == nil {
		s.PassiveSkillSets = []PassiveSkillSet{}
	}
	if s.LeaderSkillSets == nil {
		s.LeaderSkillSets = []LeaderSkillSet{}
	}
	if s.SpecialSets == nil {
		s.SpecialSets = []SpecialSet{}
	}
	if s.ActiveSkillSets == nil {
		s.ActiveSkillSets = []ActiveSkillSet{}
	}
	if s.CardSpecials == nil {
		s.CardSpecials = []CardSpecial{}
	}
	if s.PassiveSkillEffects == nil {
		s.PassiveSkillEffects = []PassiveSkillEffectEntry{}
	}
	if s.EffectPacks == nil {
		s.EffectPacks = []EffectPackEntry{}
	}
}

// AddCardForm appends form after normalizing its link slots. It returns
// ErrInvalidID when the ID is empty or already present.
func (s *PatchState) AddCardForm(form CardForm) error {
	if form.ID == "" {
		return ErrInvalidID
	}
	if s.cardFormIndex(form.ID) >= 0 {
		return ErrInvalidID
	}
	form.NormalizeLinks()
	s.CardForms = append(s.CardForms, form)
	return nil
}

// ReplaceCardForm swaps the form with the same ID for form.
func (s *PatchState) ReplaceCardForm(form CardForm) error {
	i := s.cardFormIndex(form.ID)
	if i < 0 {
		return ErrNotFound
	}
	form.NormalizeLinks()
	s.CardForms[i] = form
	return nil
}

// RemoveCardForm deletes the form with the given ID together with every
// CardSpecial row whose card_id matches it.
func (s *PatchState) RemoveCardForm(id string) error {
	i := s.cardFormIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.CardForms = append(s.CardForms[:i], s.CardForms[i+1:]...)

	kept := s.CardSpecials[:0]
	for _, cs := range s.CardSpecials {
		if cs.CardID != id {
			kept = append(kept, cs)
		}
	}
	s.CardSpecials = kept
	return nil
}

// RemoveCardSpecial deletes one CardSpecial row by its row ID.
func (s *PatchState) RemoveCardSpecial(id string) error {
	i := s.cardSpecialIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.CardSpecials = append(s.CardSpecials[:i], s.CardSpecials[i+1:]...)
	return nil
}

// CardForm returns the form with the given ID.
func (s *PatchState) CardForm(id string) (CardForm, bool) {
	if i := s.cardFormIndex(id); i >= 0 {
		return s.CardForms[i], true
	}
	return CardForm{}, false
}

// CardSpecialsFor returns the CardSpecial rows of one card in state order.
func (s *PatchState) CardSpecialsFor(cardID string) []CardSpecial {
	var out []CardSpecial
	for _, cs := range s.CardSpecials {
		if cs.CardID == cardID {
			out = append(out, cs)
		}
	}
	return out
}

func (s *PatchState) cardFormIndex(id string) int {
	for i := range s.CardForms {
		if s.CardForms[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *PatchState) cardSpecialIndex(id string) int {
	for i := range s.CardSpecials {
		if s.CardSpecials[i].ID == id {
			return i
		}
	}
	return -1
}
