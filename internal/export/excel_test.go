package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportExcel_CreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	report := buildTestReport(t)
	if err := ExportExcel(path, report); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Segments", "Edges", "Materials", "Waste Scenarios", "RAS Yield"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheet list = %v, want %v", got, want)
	}
	for _, name := range want {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("missing sheet %q", name)
		}
	}
}

func TestExportExcel_SummaryValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.xlsx")

	report := buildTestReport(t)
	if err := ExportExcel(path, report); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("read Summary sheet: %v", err)
	}
	values := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}

	if values["True Area (sq ft)"] != "2237" {
		t.Errorf("True Area = %q, want 2237", values["True Area (sq ft)"])
	}
	if values["Provider"] != "google_solar_api" {
		t.Errorf("Provider = %q, want google_solar_api", values["Provider"])
	}
	if values["Complexity"] != "very_complex" {
		t.Errorf("Complexity = %q, want very_complex", values["Complexity"])
	}
}

func TestExportExcel_SegmentRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments.xlsx")

	report := buildTestReport(t)
	if err := ExportExcel(path, report); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Segments")
	if err != nil {
		t.Fatalf("read Segments sheet: %v", err)
	}
	// Header plus four facets
	if len(rows) != 5 {
		t.Fatalf("Segments rows = %d, want 5", len(rows))
	}
	if rows[1][0] != "Segment 1" {
		t.Errorf("first segment name = %q, want Segment 1", rows[1][0])
	}
	if rows[1][5] != "6:12" {
		t.Errorf("first segment pitch ratio = %q, want 6:12", rows[1][5])
	}
}

func TestExportExcel_MaterialTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.xlsx")

	report := buildTestReport(t)
	if err := ExportExcel(path, report); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Materials")
	if err != nil {
		t.Fatalf("read Materials sheet: %v", err)
	}
	// Header, nine line items, total row
	if len(rows) != 11 {
		t.Fatalf("Materials rows = %d, want 11", len(rows))
	}
	last := rows[len(rows)-1]
	if last[1] != "TOTAL MATERIAL COST" {
		t.Errorf("total row label = %q", last[1])
	}
	if last[9] != "5418.5" {
		t.Errorf("total cost cell = %q, want 5418.5", last[9])
	}
}

func TestExportExcel_SkipsOptionalSheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.xlsx")

	report := buildTestReport(t)
	report.Materials = nil
	report.RASYield = nil
	if err := ExportExcel(path, report); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Materials"); idx >= 0 {
		t.Error("Materials sheet should be omitted when estimate is nil")
	}
	if idx, _ := f.GetSheetIndex("RAS Yield"); idx >= 0 {
		t.Error("RAS Yield sheet should be omitted when analysis is nil")
	}
}

func TestExportExcel_NilReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.xlsx")
	if err := ExportExcel(path, nil); err == nil {
		t.Fatal("expected error for nil report, got nil")
	}
}
