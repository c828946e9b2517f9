package types

import "errors"

// TimestampPolicy selects what the generator writes into created_at,
// updated_at and open_at.
type TimestampPolicy string

// Supported timestamp policies.
const (
	TimestampZero TimestampPolicy = "zero" // literal 0, the target store fills timestamps
	TimestampNow  TimestampPolicy = "now"  // wall-clock time at generation
)

// Output formats for state documents.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default local ID range.
const (
	DefaultLocalIDStart = 1070000
	DefaultLocalIDEnd   = 7999999
)

// Config validation errors.
var (
	ErrTimestampPolicyUnknown = errors.New("unknown timestamp policy")
	ErrOutputFormatUnknown    = errors.New("unknown output format")
	ErrLocalIDRangeInvalid    = errors.New("local ID range must satisfy 0 < start <= end")
)

// Config holds the settings shared by the generator, the allocator and the
// state file writer.
type Config struct {
	TimestampPolicy TimestampPolicy `json:"timestamp_policy" yaml:"timestamp_policy" mapstructure:"timestamp_policy"`
	OutputFormat    string          `json:"output_format" yaml:"output_format" mapstructure:"output_format"`
	LocalIDStart    int64           `json:"local_id_start" yaml:"local_id_start" mapstructure:"local_id_start"`
	LocalIDEnd      int64           `json:"local_id_end" yaml:"local_id_end" mapstructure:"local_id_end"`
}

// DefaultConfig returns the zero timestamp policy, JSON output and the
// default local ID range.
func DefaultConfig() Config {
	return Config{
		TimestampPolicy: TimestampZero,
		OutputFormat:    FormatJSON,
		LocalIDStart:    DefaultLocalIDStart,
		LocalIDEnd:      DefaultLocalIDEnd,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	switch c.TimestampPolicy {
	case TimestampZero, TimestampNow:
	default:
		return ErrTimestampPolicyUnknown
	}
	switch c.OutputFormat {
	case FormatJSON, FormatYAML:
	default:
		return ErrOutputFormatUnknown
	}
	if c.LocalIDStart <= 0 || c.LocalIDEnd < c.LocalIDStart {
		return ErrLocalIDRangeInvalid
	}
	return nil
}
