// Config loading for the patchmaker CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/patchmaker/internal/logging"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PATCHMAKER"

	cfgKeyLogLevel        = "log_level"
	cfgKeyTimestampPolicy = "timestamp_policy"
	cfgKeyOutputFormat    = "output_format"
	cfgKeyLocalIDStart    = "local_id_start"
	cfgKeyLocalIDEnd      = "local_id_end"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# patchmaker configuration
# Every key can be overridden with a PATCHMAKER_<KEY> environment variable.

# Log level: debug, info, warn, error
log_level: warn

# Timestamp columns: "zero" writes 0, "now" writes the generation time
timestamp_policy: zero

# Format of fetched state documents written to stdout: json or yaml
output_format: json

# Reserved range for locally allocated IDs
local_id_start: 1070000
local_id_end: 7999999
`

// loadEnvFile loads KEY=VALUE pairs into the process environment. Variables
// that are already set win. A missing default .env is not an error; a
// missing file named explicitly is.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. Environment variables
// with the PATCHMAKER_ prefix override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyTimestampPolicy, string(def.TimestampPolicy))
	v.SetDefault(cfgKeyOutputFormat, def.OutputFormat)
	v.SetDefault(cfgKeyLocalIDStart, def.LocalIDStart)
	v.SetDefault(cfgKeyLocalIDEnd, def.LocalIDEnd)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// decodeConfig extracts and validates the generator settings.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if _, err := logging.ParseLevel(v.GetString(cfgKeyLogLevel)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
