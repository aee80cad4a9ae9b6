package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region file-format

// File is the on-disk catalog layout.
type File struct {
	Strategies []StrategyDefinition `yaml:"strategies"`
}

// #endregion

// #region loader

// LoadFile reads a YAML catalog file. Strategy order in the file becomes
// the catalog enumeration order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Strategies...)
}

// #endregion
