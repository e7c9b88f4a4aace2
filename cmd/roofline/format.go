package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/model"
)

const summaryWidth = 60

// printSummary renders the measurement report as a console summary, one
// section per report page.
func printSummary(w io.Writer, r *model.RoofReport) {
	rule := strings.Repeat("=", summaryWidth)
	thin := strings.Repeat("-", summaryWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  REUSE CANADA - PRO-GRADE ROOF MEASUREMENT REPORT v"+r.Version)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Property:   %s\n", r.Location.Address)
	fmt.Fprintf(w, "  Coords:     (%v, %v)\n", r.Location.Latitude, r.Location.Longitude)
	fmt.Fprintf(w, "  Generated:  %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Provider:   %s\n", r.Provider)
	fmt.Fprintf(w, "  Quality:    %s | Confidence: %.0f%%\n", r.ImageryQuality, r.ConfidenceScore)
	fmt.Fprintln(w, thin)

	fmt.Fprintln(w, "\n  AREA MEASUREMENTS")
	fmt.Fprintf(w, "    Footprint (2D):  %8s sq ft  (%s sq m)\n",
		commas(r.TotalFootprintSqft, 0), commas(r.TotalFootprintSqm, 0))
	fmt.Fprintf(w, "    True Area (3D):  %8s sq ft  (%s sq m)\n",
		commas(r.TotalTrueAreaSqft, 0), commas(r.TotalTrueAreaSqm, 1))
	fmt.Fprintf(w, "    Multiplier:      %8.3fx\n", r.AreaMultiplier)
	fmt.Fprintf(w, "    Squares:         %8.1f\n", r.TotalTrueAreaSqft/100)

	fmt.Fprintln(w, "\n  PITCH & ORIENTATION")
	fmt.Fprintf(w, "    Weighted Pitch:  %v deg (%s)\n", r.PitchDegrees, r.PitchRatio)
	fmt.Fprintf(w, "    Primary Facing:  %v deg (%s)\n",
		r.AzimuthDegrees, engine.CardinalDirection(r.AzimuthDegrees))

	fmt.Fprintf(w, "\n  ROOF SEGMENTS (%d)\n", len(r.Segments))
	for _, s := range r.Segments {
		fmt.Fprintf(w, "    %-20s  %6s sqft  Pitch: %-8s  Facing: %s\n",
			s.Name, commas(s.TrueAreaSqft, 0), s.PitchRatio, s.AzimuthDirection)
	}

	if es := r.EdgeSummary; es != nil {
		fmt.Fprintf(w, "\n  EDGE MEASUREMENTS (Total: %v ft)\n", es.TotalFt)
		fmt.Fprintf(w, "    Ridge:  %6v ft\n", es.RidgeFt)
		fmt.Fprintf(w, "    Hip:    %6v ft\n", es.HipFt)
		fmt.Fprintf(w, "    Valley: %6v ft\n", es.ValleyFt)
		fmt.Fprintf(w, "    Eave:   %6v ft\n", es.EaveFt)
		fmt.Fprintf(w, "    Rake:   %6v ft\n", es.RakeFt)
	}

	if mat := r.Materials; mat != nil {
		fmt.Fprintf(w, "\n  BILL OF MATERIALS (%s, %s COMPLEXITY)\n",
			strings.ToUpper(mat.ShingleType.String()), strings.ToUpper(mat.ComplexityClass.String()))
		fmt.Fprintf(w, "    Waste Factor: %v%% | Gross Squares: %v\n", mat.WastePct, mat.GrossSquares)
		fmt.Fprintf(w, "    %-35s %8s %10s %12s\n", "Item", "Qty", "Unit", "Cost (CAD)")
		fmt.Fprintf(w, "    %s %s %s %s\n",
			strings.Repeat("-", 35), strings.Repeat("-", 8), strings.Repeat("-", 10), strings.Repeat("-", 12))
		for _, item := range mat.LineItems {
			fmt.Fprintf(w, "    %-35s %8.0f %10s $%10s\n",
				item.Description, item.OrderQuantity, item.OrderUnit, commas(item.LineTotal, 2))
		}
		fmt.Fprintf(w, "    %35s %8s %10s $%10s\n", "", "", "TOTAL", commas(mat.TotalCost, 2))
	}

	fmt.Fprintln(w, "\n  WASTE COMPARISON TABLE")
	fmt.Fprintf(w, "    %8s %8s %12s %10s %10s\n", "Waste %", "Factor", "Gross sqft", "Squares", "Bundles")
	for _, row := range r.WasteTable {
		fmt.Fprintf(w, "    %7d%% %8.2f %12s %10.1f %10d\n",
			row.WastePct, row.Factor, commas(row.GrossSqft, 0), row.Squares, row.Bundles)
	}

	if ras := r.RASYield; ras != nil {
		fmt.Fprintln(w, "\n  RAS YIELD ANALYSIS (Reuse Canada)")
		fmt.Fprintf(w, "    Total Weight:    %8s lbs\n", commas(ras.EstimatedWeightLbs, 0))
		fmt.Fprintf(w, "    Binder Oil:      %8.1f gal  ($%s)\n", ras.TotalBinderOilGal, commas(ras.MarketValueOil, 2))
		fmt.Fprintf(w, "    Granules:        %8s lbs  ($%s)\n", commas(ras.TotalGranulesLbs, 0), commas(ras.MarketValueGranules, 2))
		fmt.Fprintf(w, "    Fiber:           %8s lbs  ($%s)\n", commas(ras.TotalFiberLbs, 0), commas(ras.MarketValueFiber, 2))
		fmt.Fprintf(w, "    Recovery Rate:   %v%%\n", ras.RecoveryRatePct)
		fmt.Fprintf(w, "    Market Value:    $%8s CAD\n", commas(ras.MarketValueTotal, 2))
		fmt.Fprintf(w, "    Recommendation:  %s\n", truncate(ras.Recommendation, 80))
	}

	fmt.Fprintln(w, "\n  SOLAR POTENTIAL")
	fmt.Fprintf(w, "    Max Sunshine:    %s hrs/year\n", commas(r.Solar.MaxSunshineHours, 1))
	fmt.Fprintf(w, "    Panel Capacity:  %d panels\n", r.Solar.PanelsPossible)
	fmt.Fprintf(w, "    Energy Yield:    %s kWh/year\n", commas(r.Solar.YearlyEnergyKwh, 0))

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Accuracy: %s\n", r.AccuracyBenchmark)
	fmt.Fprintf(w, "  Cost: %s\n", r.CostPerQuery)
	for _, note := range r.QualityNotes {
		fmt.Fprintf(w, "  NOTE: %s\n", note)
	}
	fmt.Fprintln(w, rule)
}

// printComparison renders the manual-vs-automated method table.
func printComparison(w io.Writer, rows []engine.MethodComparison) {
	rule := strings.Repeat("=", 90)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  MANUAL vs AUTOMATED ROOF INSPECTION COMPARISON")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %-25s %-30s %-30s\n", "Metric", "Manual", "Automated")
	fmt.Fprintf(w, "  %s %s %s\n", strings.Repeat("-", 25), strings.Repeat("-", 30), strings.Repeat("-", 30))
	for _, row := range rows {
		fmt.Fprintf(w, "  %-25s %-30s %-30s\n", row.Metric, row.Manual, row.Automated)
	}
	fmt.Fprintln(w, rule)
}

// commas renders n with thousand separators and the given number of
// decimal places.
func commas(n float64, decimals int) string {
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s, frac = s[:i], s[i:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		if s[i-1] == '-' {
			break
		}
		s = s[:i] + "," + s[i:]
	}
	return s + frac
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
