// Package statefile reads and writes PatchState documents. The format is
// chosen from the file extension: .json, or .yaml and .yml.
package statefile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// ErrUnknownExtension is returned when a path has no recognized extension.
var ErrUnknownExtension = errors.New("unknown state file extension")

// FormatFor returns types.FormatJSON or types.FormatYAML for path.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return types.FormatJSON, nil
	case ".yaml", ".yml":
		return types.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
}

// Decode parses data in the given format and normalizes the result.
func Decode(data []byte, format string) (*types.PatchState, error) {
	var s types.PatchState
	switch format {
	case types.FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding JSON state: %w", err)
		}
	case types.FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding YAML state: %w", err)
		}
	default:
		return nil, types.ErrOutputFormatUnknown
	}
	s.Normalize()
	return &s, nil
}

// Encode renders s in the given format with two-space indentation and a
// trailing newline.
func Encode(s *types.PatchState, format string) ([]byte, error) {
	switch format {
	case types.FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON state: %w", err)
		}
		return append(data, '\n'), nil
	case types.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encoding YAML state: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML state: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, types.ErrOutputFormatUnknown
	}
}

// Read loads the state document at path.
func Read(path string) (*types.PatchState, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	return Decode(data, format)
}

// Write stores s at path in the format its extension names.
func Write(path string, s *types.PatchState) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

// WriteAtomic writes data to a temp file in the target directory, syncs it
// and renames it over path. A failure leaves any existing file untouched.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".patchmaker-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
