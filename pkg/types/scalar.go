package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Scalar is a loosely typed effect parameter. The game schema stores most
// eff_value columns as numbers but some (transformation targets, card IDs)
// as strings, and both forms must survive a round trip unchanged.
type Scalar struct {
	isString bool
	num      float64
	str      string
	// exact holds the decimal text of an integer that float64 cannot
	// represent; it is empty otherwise.
	exact string
}

// Num returns a numeric Scalar.
func Num(v float64) Scalar {
	return Scalar{num: v}
}

// Int returns a numeric Scalar that keeps every digit of v, including
// integers beyond 2^53.
func Int(v int64) Scalar {
	if v >= -maxExactInt && v <= maxExactInt {
		return Num(float64(v))
	}
	return Scalar{num: float64(v), exact: strconv.FormatInt(v, 10)}
}

// maxExactInt is the largest magnitude float64 holds without rounding.
const maxExactInt = 1 << 53

// Str returns a string Scalar.
func Str(v string) Scalar {
	return Scalar{isString: true, str: v}
}

// NumPtr is shorthand for a pointer to a numeric Scalar.
func NumPtr(v float64) *Scalar {
	s := Num(v)
	return &s
}

// StrPtr is shorthand for a pointer to a string Scalar.
func StrPtr(v string) *Scalar {
	s := Str(v)
	return &s
}

// IsString reports whether the value was stored as a string.
func (s Scalar) IsString() bool { return s.isString }

// Float returns the numeric value. String scalars return 0.
func (s Scalar) Float() float64 { return s.num }

// String renders the value the way it would appear unquoted: numbers in
// their shortest decimal form, strings verbatim.
func (s Scalar) String() string {
	if s.isString {
		return s.str
	}
	if s.exact != "" {
		return s.exact
	}
	return strconv.FormatFloat(s.num, 'f', -1, 64)
}

// ScalarFrom converts a driver value into a Scalar. It returns nil for nil
// and for types a database column would never produce.
func ScalarFrom(v any) *Scalar {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		v := Int(x)
		return &v
	case int:
		v := Int(int64(x))
		return &v
	case float64:
		return NumPtr(x)
	case string:
		return StrPtr(x)
	case []byte:
		return StrPtr(string(x))
	case bool:
		if x {
			return NumPtr(1)
		}
		return NumPtr(0)
	default:
		return nil
	}
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isString {
		return json.Marshal(s.str)
	}
	return []byte(s.String()), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Str(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("scalar must be a number or string: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*s = Int(i)
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("scalar must be a number or string: %w", err)
	}
	*s = Num(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (s Scalar) MarshalYAML() (any, error) {
	switch {
	case s.isString:
		return s.str, nil
	case s.exact != "":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s.exact}, nil
	default:
		return s.num, nil
	}
}

// UnmarshalYAML decodes a scalar node, keeping quoted or non-numeric values
// as strings.
func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: scalar expected", value.Line)
	}
	switch value.Tag {
	case "!!int":
		if i, err := strconv.ParseInt(value.Value, 0, 64); err == nil {
			*s = Int(i)
			return nil
		}
		v, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*s = Num(v)
	case "!!float":
		v, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*s = Num(v)
	default:
		*s = Str(value.Value)
	}
	return nil
}
