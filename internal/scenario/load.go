package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported scenario file extension %q", filepath.Ext(path))
	}
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data on top of Default and validates the result.
func Parse(data []byte, format Format) (Scenario, error) {
	s := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return Scenario{}, fmt.Errorf("json unmarshal: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("unknown scenario format %q", format)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("validation after load: %w", err)
	}
	return s, nil
}

// Marshal encodes s in the given format.
func Marshal(s Scenario, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
}
