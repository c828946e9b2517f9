package sqlgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// FormatValue renders v as a SQL literal: NULL for nil, single-quoted text
// with embedded quotes doubled, 1/0 for booleans and plain decimal numbers.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case types.Scalar:
		if x.IsString() {
			return quote(x.String())
		}
		return x.String()
	case *types.Scalar:
		if x == nil {
			return "NULL"
		}
		return FormatValue(*x)
	case *string:
		if x == nil {
			return "NULL"
		}
		return quote(*x)
	case *int:
		if x == nil {
			return "NULL"
		}
		return strconv.Itoa(*x)
	default:
		return quote(fmt.Sprint(x))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatTimestamp renders t in the game database's timestamp format,
// millisecond precision padded to six fractional digits.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000") + "000"
}
