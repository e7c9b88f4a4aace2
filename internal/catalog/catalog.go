// Package catalog persists the pricing and yield assumptions that feed the
// estimators. Crews adjust these as supplier quotes and plant calibrations
// change, so they live in an editable YAML file rather than in code.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/reusecanada/roofline/internal/model"
)

// Catalog bundles everything regionally priced: the material price book
// and the RAS yield table.
type Catalog struct {
	Prices model.PriceBook  `yaml:"prices" json:"prices"`
	Yields model.YieldTable `yaml:"yields" json:"yields"`
}

// Default returns the built-in Alberta catalog.
func Default() Catalog {
	return Catalog{
		Prices: model.DefaultPriceBook(),
		Yields: model.DefaultYieldTable(),
	}
}

// DefaultDir returns the directory holding user-level configuration,
// ~/.roofline on every platform.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roofline")
}

// DefaultPath returns the default catalog file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "catalog.yaml")
}

// Save writes the catalog to path as YAML, creating missing parent
// directories.
func Save(path string, c Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Load reads a catalog from path. A missing file returns the default
// catalog with no error, so first runs work without any setup. Fields the
// file omits keep their default values.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}
