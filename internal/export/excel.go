package export

import (
	"fmt"
	"strings"

	"github.com/reusecanada/roofline/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportExcel writes the report as a multi-sheet workbook for the
// estimating team: summary, segments, edges, materials, waste
// scenarios, and RAS yield when present.
func ExportExcel(path string, r *model.RoofReport) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}

	writeSummarySheet(f, r, headerStyle)
	writeSegmentSheet(f, r, headerStyle)
	writeEdgeSheet(f, r, headerStyle, boldStyle)
	if r.Materials != nil {
		writeMaterialSheet(f, r.Materials, headerStyle, boldStyle)
	}
	writeWasteSheet(f, r, headerStyle)
	if r.RASYield != nil {
		writeRASSheet(f, r.RASYield, headerStyle, boldStyle)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeHeaderRow writes a styled header row at row 1.
func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

// writeRow writes one row of values starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		if v == nil {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}
}

func setColWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
}

func writeSummarySheet(f *excelize.File, r *model.RoofReport, headerStyle int) {
	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, []string{"Metric", "Value"}, headerStyle)
	setColWidths(f, sheet, []float64{32, 52})

	wastePct, grossSquares := orderFigures(r)
	rows := [][]any{
		{"Report #", reportNumber(r)},
		{"Generated At", r.GeneratedAt},
		{"Report Version", r.Version},
		{"Property", fullAddress(r.Location)},
		{"Latitude", r.Location.Latitude},
		{"Longitude", r.Location.Longitude},
		{"Provider", r.Provider},
		{"Imagery Quality", r.ImageryQuality},
		{"Imagery Date", r.ImageryDate},
		{"Confidence Score (%)", r.ConfidenceScore},
		{"Footprint Area (sq ft)", r.TotalFootprintSqft},
		{"Footprint Area (sq m)", r.TotalFootprintSqm},
		{"True Area (sq ft)", r.TotalTrueAreaSqft},
		{"True Area (sq m)", r.TotalTrueAreaSqm},
		{"Area Multiplier", r.AreaMultiplier},
		{"Weighted Pitch", fmt.Sprintf("%.1f deg (%s)", r.PitchDegrees, r.PitchRatio)},
		{"Primary Azimuth (deg)", r.AzimuthDegrees},
		{"Roof Segments", len(r.Segments)},
		{"Gross Squares", grossSquares},
		{"Waste Factor (%)", wastePct},
		{"Max Sunshine (hrs/yr)", r.Solar.MaxSunshineHours},
		{"Panel Capacity", r.Solar.PanelsPossible},
		{"Energy Yield (kWh/yr)", r.Solar.YearlyEnergyKwh},
		{"Accuracy", r.AccuracyBenchmark},
		{"Cost Per Query", r.CostPerQuery},
		{"Field Verification", r.FieldVerification},
	}
	if r.Materials != nil {
		rows = append(rows,
			[]any{"Shingle Type", r.Materials.ShingleType.String()},
			[]any{"Complexity", r.Materials.ComplexityClass.String()},
			[]any{"Bundle Count", r.Materials.BundleCount},
			[]any{"Total Material Cost (CAD)", r.Materials.TotalCost},
		)
	}
	if len(r.QualityNotes) > 0 {
		rows = append(rows, []any{"Quality Notes", strings.Join(r.QualityNotes, " | ")})
	}
	for i, row := range rows {
		writeRow(f, sheet, i+2, row)
	}
}

func writeSegmentSheet(f *excelize.File, r *model.RoofReport, headerStyle int) {
	sheet := "Segments"
	f.NewSheet(sheet)
	writeHeaderRow(f, sheet, []string{
		"Name", "Footprint (sq ft)", "True Area (sq ft)", "True Area (sq m)",
		"Pitch (deg)", "Pitch Ratio", "Azimuth (deg)", "Facing", "Plane Height (m)",
	}, headerStyle)
	setColWidths(f, sheet, []float64{16, 16, 16, 16, 12, 12, 13, 10, 16})

	for i, s := range r.Segments {
		row := i + 2
		writeRow(f, sheet, row, []any{
			s.Name, s.FootprintSqft, s.TrueAreaSqft, s.TrueAreaSqm,
			s.PitchDegrees, s.PitchRatio, s.AzimuthDegrees, s.AzimuthDirection,
		})
		if s.PlaneHeightM != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *s.PlaneHeightM)
		}
	}
}

func writeEdgeSheet(f *excelize.File, r *model.RoofReport, headerStyle, boldStyle int) {
	sheet := "Edges"
	f.NewSheet(sheet)
	writeHeaderRow(f, sheet, []string{
		"Type", "Label", "Plan Length (ft)", "True Length (ft)", "Pitch Factor", "Adjacent Segments",
	}, headerStyle)
	setColWidths(f, sheet, []float64{10, 24, 16, 16, 12, 18})

	for i, e := range r.Edges {
		adj := make([]string, len(e.AdjacentSegments))
		for j, idx := range e.AdjacentSegments {
			adj[j] = fmt.Sprintf("%d", idx)
		}
		writeRow(f, sheet, i+2, []any{
			e.Type.String(), e.Label, e.PlanLengthFt, e.TrueLengthFt,
			e.PitchFactor, strings.Join(adj, ","),
		})
	}

	if r.EdgeSummary == nil {
		return
	}
	es := *r.EdgeSummary
	start := len(r.Edges) + 3
	totals := [][]any{
		{"Total Ridge (ft)", es.RidgeFt},
		{"Total Hip (ft)", es.HipFt},
		{"Total Valley (ft)", es.ValleyFt},
		{"Total Eave (ft)", es.EaveFt},
		{"Total Rake (ft)", es.RakeFt},
		{"Total Linear (ft)", es.TotalFt},
	}
	for i, row := range totals {
		writeRow(f, sheet, start+i, row)
		cell := fmt.Sprintf("A%d", start+i)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
}

func writeMaterialSheet(f *excelize.File, mat *model.MaterialEstimate, headerStyle, boldStyle int) {
	sheet := "Materials"
	f.NewSheet(sheet)
	writeHeaderRow(f, sheet, []string{
		"Category", "Description", "Net Qty", "Unit", "Waste %",
		"Gross Qty", "Order Qty", "Order Unit", "Unit Price (CAD)", "Line Total (CAD)",
	}, headerStyle)
	setColWidths(f, sheet, []float64{14, 38, 10, 10, 9, 10, 10, 10, 15, 15})

	for i, item := range mat.LineItems {
		writeRow(f, sheet, i+2, []any{
			item.Category, item.Description, item.NetQuantity, item.Unit, item.WastePct,
			item.GrossQuantity, item.OrderQuantity, item.OrderUnit, item.UnitPrice, item.LineTotal,
		})
	}

	totalRow := len(mat.LineItems) + 2
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "TOTAL MATERIAL COST")
	f.SetCellValue(sheet, fmt.Sprintf("J%d", totalRow), mat.TotalCost)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("J%d", totalRow), boldStyle)
}

func writeWasteSheet(f *excelize.File, r *model.RoofReport, headerStyle int) {
	sheet := "Waste Scenarios"
	f.NewSheet(sheet)
	writeHeaderRow(f, sheet, []string{
		"Waste %", "Factor", "Description", "Gross (sq ft)", "Squares", "Bundles",
	}, headerStyle)
	setColWidths(f, sheet, []float64{9, 8, 38, 13, 10, 10})

	for i, w := range r.WasteTable {
		writeRow(f, sheet, i+2, []any{
			w.WastePct, w.Factor, w.Description, w.GrossSqft, w.Squares, w.Bundles,
		})
	}
}

func writeRASSheet(f *excelize.File, ras *model.RASYieldAnalysis, headerStyle, boldStyle int) {
	sheet := "RAS Yield"
	f.NewSheet(sheet)
	writeHeaderRow(f, sheet, []string{
		"Segment", "Pitch (deg)", "Pitch Ratio", "Area (sq ft)",
		"Recovery Stream", "Binder Oil (gal)", "Granules (lbs)", "Fiber (lbs)",
	}, headerStyle)
	setColWidths(f, sheet, []float64{16, 11, 11, 12, 16, 15, 14, 12})

	for i, seg := range ras.Segments {
		writeRow(f, sheet, i+2, []any{
			seg.SegmentName, seg.PitchDegrees, seg.PitchRatio, seg.AreaSqft,
			seg.RecoveryClass.String(), seg.BinderOilGal, seg.GranulesLbs, seg.FiberLbs,
		})
	}

	totalRow := len(ras.Segments) + 2
	writeRow(f, sheet, totalRow, []any{
		"TOTALS", nil, nil, ras.TotalAreaSqft, nil,
		ras.TotalBinderOilGal, ras.TotalGranulesLbs, ras.TotalFiberLbs,
	})
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), boldStyle)

	meta := [][]any{
		{"Estimated Weight (lbs)", ras.EstimatedWeightLbs},
		{"Total Recoverable (lbs)", ras.TotalRecoverableLbs},
		{"Recovery Rate (%)", ras.RecoveryRatePct},
		{"Market Value Oil (CAD)", ras.MarketValueOil},
		{"Market Value Granules (CAD)", ras.MarketValueGranules},
		{"Market Value Fiber (CAD)", ras.MarketValueFiber},
		{"Market Value Total (CAD)", ras.MarketValueTotal},
		{"Low Pitch Area (%)", ras.SlopeDistribution.LowPitchPct},
		{"Medium Pitch Area (%)", ras.SlopeDistribution.MediumPitchPct},
		{"High Pitch Area (%)", ras.SlopeDistribution.HighPitchPct},
		{"Processing Recommendation", ras.Recommendation},
	}
	start := totalRow + 2
	for i, row := range meta {
		writeRow(f, sheet, start+i, row)
		cell := fmt.Sprintf("A%d", start+i)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
}
