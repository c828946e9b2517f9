package sqlite

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/patchmaker/internal/pair"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

const (
	// searchFetchLimit leaves room for the 0/1 pair collapse.
	searchFetchLimit = 200
	// SearchResultLimit caps the hits returned by Search.
	SearchResultLimit = 50
)

// Search finds cards whose name contains query or whose ID starts with it.
// The match is the store's LIKE, so it is case-insensitive for ASCII only.
// A neutral element filter (below 10) also matches its Super and Extreme
// variants. Both forms of a character collapse into one hit, preferring the
// form whose ID ends in "1". Results are sorted by name then ID. A blank
// query returns no hits.
func (s *Store) Search(query string, f types.SearchFilter) ([]types.CardBasicInfo, error) {
	if strings.TrimSpace(query) == "" {
		return []types.CardBasicInfo{}, nil
	}

	var b strings.Builder
	b.WriteString("SELECT c.id, c.name, c.rarity, c.element FROM cards c WHERE (c.name LIKE ? OR c.id LIKE ?)")
	args := []any{"%" + query + "%", query + "%"}

	if f.Element != nil {
		e := *f.Element
		if e < types.ElementSuperOffset {
			base := e % types.ElementSuperOffset
			b.WriteString(" AND (c.element = ? OR c.element = ? OR c.element = ?)")
			args = append(args, base, base+types.ElementSuperOffset, base+types.ElementExtremeOffset)
		} else {
			b.WriteString(" AND c.element = ?")
			args = append(args, e)
		}
	}
	if f.Rarity != nil {
		b.WriteString(" AND c.rarity = ?")
		args = append(args, *f.Rarity)
	}
	switch f.Kind {
	case types.IDKindBase:
		b.WriteString(" AND SUBSTR(c.id, 1, 1) = '1'")
	case types.IDKindTransformed:
		b.WriteString(" AND SUBSTR(c.id, 1, 1) != '1'")
	}
	b.WriteString(" ORDER BY c.name ASC, c.id ASC LIMIT ?")
	args = append(args, searchFetchLimit)

	rows, err := s.query("search cards", b.String(), args...)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]types.CardBasicInfo, len(rows))
	for _, row := range rows {
		hit := types.CardBasicInfo{
			ID:      str(row["id"]),
			Name:    str(row["name"]),
			Rarity:  intOr(row["rarity"], 0),
			Element: intOr(row["element"], 0),
		}
		key := pair.DedupKey(hit.ID)
		cur, ok := byKey[key]
		if !ok || pair.Prefer(cur.ID, hit.ID) {
			byKey[key] = hit
		}
	}

	hits := make([]types.CardBasicInfo, 0, len(byKey))
	for _, h := range byKey {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Name != hits[j].Name {
			return hits[i].Name < hits[j].Name
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > SearchResultLimit {
		hits = hits[:SearchResultLimit]
	}
	return hits, nil
}
