package sqlgen

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Junction rows carry IDs derived from their endpoints. The formats below are
// what the game data uses and must stay stable across patches so that
// INSERT OR REPLACE overwrites rather than duplicates.

// CategoryEntryID returns the card_card_categories ID for the 1-based
// ordinal of a category on a card: the card ID followed by the ordinal as
// three digits, e.g. "1062320" and 2 give "1062320002".
func CategoryEntryID(cardID string, ordinal int) string {
	return fmt.Sprintf("%s%03d", cardID, ordinal)
}

// CardActiveSkillID returns "{card_id}_{active_skill_set_id}".
func CardActiveSkillID(cardID, setID string) string {
	return cardID + "_" + setID
}

// PassiveRelationID returns "{passive_skill_set_id}_{passive_skill_id}".
func PassiveRelationID(setID, skillID string) string {
	return setID + "_" + skillID
}

// CategoryEntries derives the card_card_categories rows of a form. Blank
// category IDs are skipped but still consume their ordinal.
func CategoryEntries(f types.CardForm) []types.CardCategoryEntry {
	var out []types.CardCategoryEntry
	for i, catID := range f.CategoryIDs {
		if strings.TrimSpace(catID) == "" {
			continue
		}
		out = append(out, types.CardCategoryEntry{
			ID:             CategoryEntryID(f.ID, i+1),
			CardID:         f.ID,
			CardCategoryID: catID,
			Num:            i + 1,
		})
	}
	return out
}

// CardActiveSkill derives the card_active_skills row of a form, if it
// references an active skill set.
func CardActiveSkill(f types.CardForm) (types.CardActiveSkill, bool) {
	if f.ActiveSkillSetIDRef == "" {
		return types.CardActiveSkill{}, false
	}
	return types.CardActiveSkill{
		ID:               CardActiveSkillID(f.ID, f.ActiveSkillSetIDRef),
		CardID:           f.ID,
		ActiveSkillSetID: f.ActiveSkillSetIDRef,
	}, true
}
