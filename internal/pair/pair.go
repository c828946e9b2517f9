// Package pair resolves the two physical card rows of one character. A
// character's forms share every digit of their ID except the last, which is
// "0" for the base row and "1" for the awakened or transformed row.
package pair

import (
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// BaseID returns id without its last character. IDs of one character or
// less have no base and are treated as unpaired.
func BaseID(id string) (string, bool) {
	if len(id) <= 1 {
		return "", false
	}
	return id[:len(id)-1], true
}

// Siblings returns the IDs to look up for id: base+"0" then base+"1", or id
// alone when it is too short to pair.
func Siblings(id string) []string {
	base, ok := BaseID(id)
	if !ok {
		return []string{id}
	}
	return []string{base + "0", base + "1"}
}

// DedupKey groups search hits by character. IDs ending in "0" or "1" key on
// their base; any other ID is its own key.
func DedupKey(id string) string {
	base, ok := BaseID(id)
	if !ok {
		return id
	}
	switch id[len(id)-1] {
	case '0', '1':
		return base
	default:
		return id
	}
}

// Prefer reports whether candidate should replace current as the
// representative search hit for their shared key: the "1" row wins over the
// "0" row, otherwise the first hit stays.
func Prefer(current, candidate string) bool {
	return len(candidate) > 1 && candidate[len(candidate)-1] == '1' &&
		len(current) > 1 && current[len(current)-1] == '0'
}

// FetchFunc loads the entity graph of exactly one card ID. It returns
// (nil, nil) when no card row has that ID.
type FetchFunc func(id string) (*types.PatchState, error)

// Resolve fetches both forms of the character that id belongs to and merges
// them. If neither sibling exists, id itself is fetched as a standalone
// form. It returns types.ErrNotFound when nothing matches.
func Resolve(id string, fetch FetchFunc) (*types.PatchState, error) {
	siblings := Siblings(id)
	parts := make([]*types.PatchState, 0, len(siblings))
	for _, sid := range siblings {
		part, err := fetch(sid)
		if err != nil {
			return nil, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 && len(siblings) > 1 {
		part, err := fetch(id)
		if err != nil {
			return nil, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return nil, types.ErrNotFound
	}
	return Merge(parts...), nil
}

// Merge combines per-form states into one. Card forms keep their order. Set
// collections are merged by ID with the first occurrence winning. CardSpecial
// rows are concatenated without deduplication since each form owns its own.
// The result is never an EZA state.
func Merge(parts ...*types.PatchState) *types.PatchState {
	out := types.NewPatchState()
	var (
		infos   = newSeen()
		passive = newSeen()
		leader  = newSeen()
		special = newSeen()
		active  = newSeen()
		effects = newSeen()
		packs   = newSeen()
	)
	for _, p := range parts {
		if p == nil {
			continue
		}
		out.CardForms = append(out.CardForms, p.CardForms...)
		for _, v := range p.CardUniqueInfos {
			if infos.add(v.ID) {
				out.CardUniqueInfos = append(out.CardUniqueInfos, v)
			}
		}
		for _, v := range p.PassiveSkillSets {
			if passive.add(v.ID) {
				out.PassiveSkillSets = append(out.PassiveSkillSets, v)
			}
		}
		for _, v := range p.LeaderSkillSets {
			if leader.add(v.ID) {
				out.LeaderSkillSets = append(out.LeaderSkillSets, v)
			}
		}
		for _, v := range p.SpecialSets {
			if special.add(v.ID) {
				out.SpecialSets = append(out.SpecialSets, v)
			}
		}
		for _, v := range p.ActiveSkillSets {
			if active.add(v.ID) {
				out.ActiveSkillSets = append(out.ActiveSkillSets, v)
			}
		}
		out.CardSpecials = append(out.CardSpecials, p.CardSpecials...)
		for _, v := range p.PassiveSkillEffects {
			if effects.add(v.ID) {
				out.PassiveSkillEffects = append(out.PassiveSkillEffects, v)
			}
		}
		for _, v := range p.EffectPacks {
			if packs.add(v.ID) {
				out.EffectPacks = append(out.EffectPacks, v)
			}
		}
	}
	out.IsEZA = false
	return out
}

type seen map[string]bool

func newSeen() seen { return make(seen) }

// add records id and reports whether it was new.
func (s seen) add(id string) bool {
	if s[id] {
		return false
	}
	s[id] = true
	return true
}
