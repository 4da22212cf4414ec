package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format of a definition file
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// LoadFromFile loads a truss definition from a JSON or YAML file
func LoadFromFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatOf(path))
}

// Parse decodes and validates a definition
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}
