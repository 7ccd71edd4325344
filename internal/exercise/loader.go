package exercise

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads and validates a single exercise definition from a JSON file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", path, err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse definition %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition %s: %w", path, err)
	}

	return &def, nil
}

// LoadDir loads every *.json definition in a directory. A missing directory
// yields an empty slice; a malformed or invalid definition fails the whole
// load so configuration errors surface at startup, not mid-session.
func LoadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read definitions dir %s: %w", dir, err)
	}

	var defs []*Definition
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		def, err := Load(path)
		if err != nil {
			return nil, err
		}

		if prev, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q in %s and %s", def.ID, prev, path)
		}
		seen[def.ID] = path

		defs = append(defs, def)
	}

	return defs, nil
}
