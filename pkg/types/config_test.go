package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "now policy is valid",
			mutate:  func(c *Config) { c.TimestampPolicy = TimestampNow },
			wantErr: nil,
		},
		{
			name:    "unknown policy returns ErrTimestampPolicyUnknown",
			mutate:  func(c *Config) { c.TimestampPolicy = "later" },
			wantErr: ErrTimestampPolicyUnknown,
		},
		{
			name:    "empty policy returns ErrTimestampPolicyUnknown",
			mutate:  func(c *Config) { c.TimestampPolicy = "" },
			wantErr: ErrTimestampPolicyUnknown,
		},
		{
			name:    "yaml output is valid",
			mutate:  func(c *Config) { c.OutputFormat = FormatYAML },
			wantErr: nil,
		},
		{
			name:    "unknown output returns ErrOutputFormatUnknown",
			mutate:  func(c *Config) { c.OutputFormat = "toml" },
			wantErr: ErrOutputFormatUnknown,
		},
		{
			name:    "inverted range returns ErrLocalIDRangeInvalid",
			mutate:  func(c *Config) { c.LocalIDStart, c.LocalIDEnd = 10, 5 },
			wantErr: ErrLocalIDRangeInvalid,
		},
		{
			name:    "zero start returns ErrLocalIDRangeInvalid",
			mutate:  func(c *Config) { c.LocalIDStart = 0 },
			wantErr: ErrLocalIDRangeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
