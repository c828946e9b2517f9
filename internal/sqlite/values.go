package sqlite

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Column values come back from the driver as int64, float64, string, []byte
// or nil. The helpers below convert them with the same leniency the editor
// applies to hand-made databases: missing values fall back to defaults and
// optional references treat 0 and "" as unset.

func str(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func strOr(v any, def string) string {
	if v == nil {
		return def
	}
	return str(v)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case []byte:
		return len(x) > 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case bool:
		return x
	default:
		return true
	}
}

// optStr returns nil unless v is truthy.
func optStr(v any) *string {
	if !truthy(v) {
		return nil
	}
	s := str(v)
	return &s
}

func intOr(v any, def int) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	case []byte:
		if n, err := strconv.Atoi(strings.TrimSpace(string(x))); err == nil {
			return n
		}
	}
	return def
}

// optInt returns nil unless v is truthy.
func optInt(v any) *int {
	if !truthy(v) {
		return nil
	}
	n := intOr(v, 0)
	return &n
}

// nullableInt returns nil only for NULL; zero is kept.
func nullableInt(v any) *int {
	if v == nil {
		return nil
	}
	n := intOr(v, 0)
	return &n
}

func scalar(v any) *types.Scalar {
	return types.ScalarFrom(v)
}

// linkIDs reads the seven link columns of a card row, dropping unset slots
// and padding back to types.LinkSlots.
func linkIDs(row map[string]any) []string {
	links := make([]string, 0, types.LinkSlots)
	for n := 1; n <= types.LinkSlots; n++ {
		id := strings.TrimSpace(str(row["link_skill"+strconv.Itoa(n)+"_id"]))
		if id == "" || id == "null" || id == "0" {
			continue
		}
		links = append(links, id)
	}
	f := types.CardForm{LinkSkillIDs: links}
	f.NormalizeLinks()
	return f.LinkSkillIDs
}
