package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusecanada/roofline/internal/model"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	c := Default()
	c.Prices.Region = "Saskatchewan"
	c.Prices.ArchitecturalBundle = 45.50
	c.Yields.OilPricePerGal = 4.10

	if err := Save(path, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Prices.Region != "Saskatchewan" {
		t.Errorf("expected region=Saskatchewan, got %s", loaded.Prices.Region)
	}
	if loaded.Prices.ArchitecturalBundle != 45.50 {
		t.Errorf("expected architectural bundle 45.50, got %f", loaded.Prices.ArchitecturalBundle)
	}
	if loaded.Yields.OilPricePerGal != 4.10 {
		t.Errorf("expected oil price 4.10, got %f", loaded.Yields.OilPricePerGal)
	}
	if got := loaded.Yields.RatesFor(model.RecoveryGranule).Granule; got != 0.40 {
		t.Errorf("expected granule rate 0.40, got %f", got)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "catalog.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := Default()
	if c.Prices.ArchitecturalBundle != defaults.Prices.ArchitecturalBundle {
		t.Errorf("expected default bundle price %f, got %f",
			defaults.Prices.ArchitecturalBundle, c.Prices.ArchitecturalBundle)
	}
	if c.Prices.Region != "Alberta" {
		t.Errorf("expected region=Alberta, got %s", c.Prices.Region)
	}
}

func TestLoadCatalogPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	partial := "prices:\n  region: Manitoba\n  architectural_bundle: 39.99\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Prices.Region != "Manitoba" {
		t.Errorf("expected region=Manitoba, got %s", c.Prices.Region)
	}
	if c.Prices.ArchitecturalBundle != 39.99 {
		t.Errorf("expected overridden bundle price, got %f", c.Prices.ArchitecturalBundle)
	}
	// Untouched sections keep their built-in values.
	if c.Prices.NailBox30Lb != 65.00 {
		t.Errorf("expected default nail box price, got %f", c.Prices.NailBox30Lb)
	}
	if w, _ := c.Yields.SquareWeight(model.ShingleArchitectural); w != 250 {
		t.Errorf("expected default weight 250, got %f", w)
	}
}

func TestLoadCatalogMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	if err := os.WriteFile(path, []byte("prices: [not a mapping"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed catalog")
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if filepath.Base(path) != "catalog.yaml" {
		t.Errorf("expected catalog.yaml, got %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".roofline" {
		t.Errorf("expected .roofline dir, got %s", path)
	}
}
