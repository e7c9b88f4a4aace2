package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/model"
)

// buildTestReport runs the full analysis chain on a realistic hip roof
// so the exporters see the same report shape production produces.
func buildTestReport(t *testing.T) *model.RoofReport {
	t.Helper()

	seg := func(name string, azimuth float64, direction string) model.Segment {
		return model.Segment{
			Name:             name,
			FootprintSqft:    500,
			TrueAreaSqft:     559.2,
			TrueAreaSqm:      51.9,
			PitchDegrees:     26.6,
			PitchRatio:       "6:12",
			AzimuthDegrees:   azimuth,
			AzimuthDirection: direction,
		}
	}

	a := engine.NewAnalyzer(model.DefaultPriceBook(), model.DefaultYieldTable(), nil)
	report, err := a.Analyze(engine.Input{
		Location: model.Location{
			Address:    "8204 Argyll Rd NW, Edmonton, AB T6E 4G1, Canada",
			City:       "Edmonton",
			Province:   "AB",
			PostalCode: "T6E 4G1",
			Latitude:   53.5205,
			Longitude:  -113.4937,
		},
		Segments: []model.Segment{
			seg("Segment 1", 180, "S"),
			seg("Segment 2", 0, "N"),
			seg("Segment 3", 90, "E"),
			seg("Segment 4", 270, "W"),
		},
		Shingle: model.ShingleArchitectural,
		Solar: model.SolarPotential{
			MaxSunshineHours: 2100.5,
			PanelsPossible:   24,
			YearlyEnergyKwh:  9600,
		},
		ImageryQuality: model.QualityHigh,
		ImageryDate:    "2025-06-14",
		Provider:       "google_solar_api",
		APIDurationMs:  412.5,
		Imagery: model.ImageryLinks{
			Satellite: "https://maps.googleapis.com/maps/api/staticmap?center=53.5205,-113.4937&zoom=20",
			North:     "https://maps.googleapis.com/maps/api/streetview?location=53.5205,-113.4937&heading=0",
			South:     "https://maps.googleapis.com/maps/api/streetview?location=53.5205,-113.4937&heading=180",
			East:      "https://maps.googleapis.com/maps/api/streetview?location=53.5205,-113.4937&heading=90",
			West:      "https://maps.googleapis.com/maps/api/streetview?location=53.5205,-113.4937&heading=270",
		},
	})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	return report
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	report := buildTestReport(t)
	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	// Four pages with five QR images should be well past a trivial size
	if info.Size() < 2000 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_NilReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.pdf")
	if err := ExportPDF(path, nil); err == nil {
		t.Fatal("expected error for nil report, got nil")
	}
}

func TestExportPDF_WithoutRASPage(t *testing.T) {
	dir := t.TempDir()
	withRAS := filepath.Join(dir, "with_ras.pdf")
	withoutRAS := filepath.Join(dir, "without_ras.pdf")

	report := buildTestReport(t)
	if err := ExportPDF(withRAS, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	report.RASYield = nil
	if err := ExportPDF(withoutRAS, report); err != nil {
		t.Fatalf("ExportPDF without RAS returned error: %v", err)
	}

	a, _ := os.Stat(withRAS)
	b, _ := os.Stat(withoutRAS)
	if b.Size() >= a.Size() {
		t.Errorf("report without RAS page should be smaller: %d >= %d", b.Size(), a.Size())
	}
}

func TestExportPDF_MinimalReport(t *testing.T) {
	// A report with no materials, edges or imagery still renders.
	path := filepath.Join(t.TempDir(), "minimal.pdf")
	report := &model.RoofReport{
		ReportID:    "ab12cd34",
		GeneratedAt: "2025-06-14T10:30:00Z",
		Version:     model.ReportVersion,
		Location:    model.Location{Latitude: 53.5205, Longitude: -113.4937},
	}
	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestReportNumber(t *testing.T) {
	report := &model.RoofReport{
		ReportID:    "ab12cd34",
		GeneratedAt: "2025-06-14T10:30:00Z",
	}
	got := reportNumber(report)
	want := "RM-20250614-AB12CD34"
	if got != want {
		t.Errorf("reportNumber() = %q, want %q", got, want)
	}
}

func TestFullAddress(t *testing.T) {
	loc := model.Location{
		Address:    "8204 Argyll Rd NW",
		City:       "Edmonton",
		Province:   "AB",
		PostalCode: "T6E 4G1",
	}
	got := fullAddress(loc)
	want := "8204 Argyll Rd NW, Edmonton, AB, T6E 4G1"
	if got != want {
		t.Errorf("fullAddress() = %q, want %q", got, want)
	}

	coordsOnly := model.Location{Latitude: 53.5, Longitude: -113.49}
	if got := fullAddress(coordsOnly); got != "53.5, -113.49" {
		t.Errorf("fullAddress(coords) = %q, want coordinate fallback", got)
	}
}

func TestPenetrationEstimates(t *testing.T) {
	tests := []struct {
		segments     int
		pipeBoots    int
		chimneys     int
		exhaustVents int
	}{
		{0, 2, 0, 1},
		{2, 2, 0, 1},
		{4, 2, 0, 1},
		{6, 3, 1, 2},
		{9, 4, 1, 3},
	}
	for _, tt := range tests {
		if got := pipeBootCount(tt.segments); got != tt.pipeBoots {
			t.Errorf("pipeBootCount(%d) = %d, want %d", tt.segments, got, tt.pipeBoots)
		}
		if got := chimneyCount(tt.segments); got != tt.chimneys {
			t.Errorf("chimneyCount(%d) = %d, want %d", tt.segments, got, tt.chimneys)
		}
		if got := exhaustVentCount(tt.segments); got != tt.exhaustVents {
			t.Errorf("exhaustVentCount(%d) = %d, want %d", tt.segments, got, tt.exhaustVents)
		}
	}

	if got := nailPounds(25.8); got != 39 {
		t.Errorf("nailPounds(25.8) = %d, want 39", got)
	}
	if got := cementTubeCount(25.8); got != 2 {
		t.Errorf("cementTubeCount(25.8) = %d, want 2", got)
	}
	if got := cementTubeCount(46); got != 4 {
		t.Errorf("cementTubeCount(46) = %d, want 4", got)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		n        float64
		decimals int
		want     string
	}{
		{2237, 0, "2,237"},
		{559, 0, "559"},
		{1234567.5, 1, "1,234,567.5"},
		{5418.5, 2, "5,418.50"},
		{-12500, 0, "-12,500"},
		{0, 0, "0"},
	}
	for _, tt := range tests {
		if got := groupThousands(tt.n, tt.decimals); got != tt.want {
			t.Errorf("groupThousands(%v, %d) = %q, want %q", tt.n, tt.decimals, got, tt.want)
		}
	}
}
