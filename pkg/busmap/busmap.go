// Package busmap persists the video-device to I2C-bus mapping table
// produced by the bus discovery scan and consumed by the probe tools.
package busmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the discovery tool writes the mapping table
// and where the probe tools look for it.
const DefaultPath = "/opt/arducam/arducam_i2c_map.json"

// DefaultFileName is appended when a save path points at a directory.
const DefaultFileName = "arducam_i2c_map.json"

// Mapping errors
var (
	// ErrNoMapping indicates the requested video device has no entry,
	// or was scanned without a sensor being detected.
	ErrNoMapping = errors.New("no bus mapping for device")
)

// Entry describes the I2C endpoint a video device's sensor answers
// on.
type Entry struct {
	Bus    int    `json:"bus" yaml:"bus"`
	Addr   string `json:"addr" yaml:"addr"`
	Sensor string `json:"sensor" yaml:"sensor"`
}

// Mapping maps a video device name ("video0") to its I2C endpoint. A
// nil entry records that the device was scanned and no sensor was
// found.
type Mapping map[string]*Entry

// Lookup resolves a video device to its entry. The device may be
// given as a bare name or a /dev path.
func (m Mapping) Lookup(device string) (*Entry, error) {
	name := filepath.Base(device)
	entry, ok := m[name]
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMapping, device)
	}
	return entry, nil
}

// Load reads a mapping table. The format is chosen by extension:
// .yaml/.yml parse as YAML, anything else as JSON.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping table: %w", err)
	}

	var mapping Mapping
	if isYAML(path) {
		err = yaml.Unmarshal(data, &mapping)
	} else {
		err = json.Unmarshal(data, &mapping)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping table %s: %w", path, err)
	}
	return mapping, nil
}

// Save writes a mapping table, creating parent directories as needed.
// A path pointing at an existing directory gets the default file name
// appended.
func Save(mapping Mapping, path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(mapping)
	} else {
		data, err = json.MarshalIndent(mapping, "", "    ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal mapping table: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping table: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
