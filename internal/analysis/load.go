package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region loader

// LoadBaselines reads baselines from a YAML file. Decoding starts from the
// defaults, so keys absent from the file keep their default values.
func LoadBaselines(path string) (Baselines, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Baselines{}, fmt.Errorf("read baselines %s: %w", path, err)
	}
	b := DefaultBaselines()
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Baselines{}, fmt.Errorf("parse baselines %s: %w", path, err)
	}
	return b, nil
}

// #endregion
