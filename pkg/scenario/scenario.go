// Package scenario loads planner scenarios from YAML, TOML or JSON files.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
)

// Format is a scenario file encoding.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// ErrUnknownFormat is returned for extensions other than .yaml, .yml, .toml and .json.
var ErrUnknownFormat = errors.New("unknown scenario format")

// Defaults returns the scenario a file is decoded over, so omitted fields
// keep their usual values.
func Defaults() planner.Scenario {
	return planner.Scenario{
		BaseZone:        constants.DefaultBaseZone,
		DurationMinutes: constants.DefaultDurationMinutes,
		WorkWindow: planner.WorkWindow{
			Enabled: true,
			Start:   constants.DefaultWorkStart,
			End:     constants.DefaultWorkEnd,
		},
	}
}

// FormatFor maps a path's extension to a Format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads a scenario file.
func Load(path string) (planner.Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return planner.Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return planner.Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return planner.Scenario{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, nil
}

// Decode parses data in the given format over Defaults.
func Decode(data []byte, format Format) (planner.Scenario, error) {
	s := Defaults()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return planner.Scenario{}, fmt.Errorf("yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return planner.Scenario{}, fmt.Errorf("toml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return planner.Scenario{}, fmt.Errorf("json: %w", err)
		}
	default:
		return planner.Scenario{}, ErrUnknownFormat
	}
	return s, nil
}
