// Package export renders roof measurement reports to the formats the
// estimating team hands out: branded PDF, Excel workbook, DXF plan
// schematic and raw JSON.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reusecanada/roofline/internal/model"
)

// ensureDir creates the parent directory of path if it does not exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// ExportJSON writes the full report as indented JSON.
func ExportJSON(path string, r *model.RoofReport) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
