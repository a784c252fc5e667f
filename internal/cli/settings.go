package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSettings reads a preferences document from a YAML or JSON file.
func LoadSettings(path string) (map[string]any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("settings file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	settings, err := parseSettings(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, errors.New("settings file contains no entries")
	}
	return settings, nil
}

// parseSettings tries each decoder whose extension matches (all of them when ext is empty).
func parseSettings(data []byte, ext string) (map[string]any, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		ext string
		fn  func([]byte, any) error
	}{
		{ext: ".yaml", fn: yaml.Unmarshal},
		{ext: ".yml", fn: yaml.Unmarshal},
		{ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out map[string]any
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return nil, errors.New("settings file format not recognized (expected YAML or JSON)")
}
