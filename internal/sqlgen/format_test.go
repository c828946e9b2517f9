package sqlgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

func TestFormatValue(t *testing.T) {
	s := "x"
	n := 7
	var nilStr *string
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "Goku", "'Goku'"},
		{"empty string", "", "''"},
		{"embedded quote", "Goku's", "'Goku''s'"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"int64", int64(-3), "-3"},
		{"float", 0.25, "0.25"},
		{"whole float", float64(120), "120"},
		{"numeric scalar", types.Num(30), "30"},
		{"string scalar", types.Str("4016891"), "'4016891'"},
		{"scalar past 2^53", types.Int(9007199254740993), "9007199254740993"},
		{"nil scalar", (*types.Scalar)(nil), "NULL"},
		{"string pointer", &s, "'x'"},
		{"nil string pointer", nilStr, "NULL"},
		{"int pointer", &n, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 2, 123_456_789, time.UTC)
	assert.Equal(t, "2025-03-07 09:05:02.123000", FormatTimestamp(ts))
}
