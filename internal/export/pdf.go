package export

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/reusecanada/roofline/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// rgb represents an RGB color used by the report renderer.
type rgb struct {
	R, G, B int
}

// Brand palette from the printed report templates.
var (
	navyDark   = rgb{R: 11, G: 30, B: 47}
	navyPanel  = rgb{R: 18, G: 44, B: 70}
	cyanAccent = rgb{R: 0, G: 229, B: 255}
	skyMuted   = rgb{R: 142, G: 202, B: 230}
	textLight  = rgb{R: 176, G: 196, B: 216}
	navyInk    = rgb{R: 0, G: 47, B: 108}
	blueSteel  = rgb{R: 51, G: 92, B: 138}
	pageTint   = rgb{R: 232, G: 244, B: 253}
	boxBorder  = rgb{R: 224, G: 236, B: 245}
)

// edgeColors mirrors the line colors used on the measurement diagram.
var edgeColors = map[model.EdgeType]rgb{
	model.EdgeRidge:  {R: 229, G: 57, B: 53},
	model.EdgeHip:    {R: 91, G: 155, B: 213},
	model.EdgeValley: {R: 67, G: 160, B: 71},
	model.EdgeEave:   {R: 255, G: 152, B: 0},
	model.EdgeRake:   {R: 156, G: 39, B: 176},
}

// Page layout constants (US Letter portrait in mm).
const (
	pageWidth    = 215.9
	pageHeight   = 279.4
	marginLeft   = 14.0
	marginRight  = 14.0
	marginTop    = 14.0
	marginBottom = 14.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// ExportPDF renders the branded multi-page measurement report.
// Page 1 is the dark dashboard, page 2 the material order calculation,
// page 3 the detailed measurements, and page 4 the RAS recovery
// analysis when the report includes one.
func ExportPDF(path string, r *model.RoofReport) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderDashboardPage(pdf, r); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}

	pdf.AddPage()
	renderMaterialsPage(pdf, r)

	pdf.AddPage()
	renderMeasurementsPage(pdf, r)

	if r.RASYield != nil {
		pdf.AddPage()
		renderRecoveryPage(pdf, r)
	}

	return pdf.OutputFileAndClose(path)
}

// renderDashboardPage draws the dark-theme measurement dashboard.
func renderDashboardPage(pdf *fpdf.Fpdf, r *model.RoofReport) error {
	setFill(pdf, navyDark)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	// Logo block and title
	setFill(pdf, cyanAccent)
	pdf.RoundedRect(marginLeft, marginTop, 12, 12, 2.5, "1234", "F")
	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, navyDark)
	pdf.SetXY(marginLeft, marginTop+4)
	pdf.CellFormat(12, 4, "RC", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	setText(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.SetXY(marginLeft+16, marginTop)
	pdf.CellFormat(120, 7, "ROOF MEASUREMENT REPORT", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, skyMuted)
	pdf.SetXY(marginLeft+16, marginTop+7)
	pdf.CellFormat(120, 4, "Powered by Reuse Canada", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, cyanAccent)
	pdf.SetXY(pageWidth-marginRight-60, marginTop)
	pdf.CellFormat(60, 5, reportNumber(r), "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, skyMuted)
	pdf.SetXY(pageWidth-marginRight-60, marginTop+5)
	pdf.CellFormat(60, 4, reportDate(r), "", 0, "R", false, 0, "")

	// Address bar
	y := marginTop + 18.0
	setFill(pdf, navyPanel)
	setDraw(pdf, cyanAccent)
	pdf.SetLineWidth(0.2)
	pdf.RoundedRect(marginLeft, y, contentWidth, 9, 2, "1234", "FD")
	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, textLight)
	pdf.SetXY(marginLeft+4, y+2.5)
	pdf.CellFormat(contentWidth-8, 4, fullAddress(r.Location), "", 0, "L", false, 0, "")
	y += 13

	sectionLabel(pdf, y, "ROOF IMAGERY")
	y += 6

	// Imagery access: one large QR for the satellite view, four small
	// ones for the street-level headings. Scanning them loads the
	// live imagery without baking API keys into the document.
	if err := renderImageryQRs(pdf, r, y); err != nil {
		return err
	}

	// Capture metadata card to the right of the QR grid
	cardX := marginLeft + 128.0
	setFill(pdf, navyPanel)
	setDraw(pdf, cyanAccent)
	pdf.RoundedRect(cardX, y, contentWidth-128, 54, 2, "1234", "FD")
	meta := []struct {
		label string
		value string
	}{
		{"IMAGERY QUALITY", r.ImageryQuality},
		{"IMAGERY DATE", orDash(r.ImageryDate)},
		{"PROVIDER", providerLabel(r.Provider)},
		{"API LATENCY", fmt.Sprintf("%.0f ms", r.APIDurationMs)},
	}
	my := y + 4
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 6)
		setText(pdf, skyMuted)
		pdf.SetXY(cardX+4, my)
		pdf.CellFormat(contentWidth-136, 3, m.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		setText(pdf, rgb{R: 255, G: 255, B: 255})
		pdf.SetXY(cardX+4, my+3.5)
		pdf.CellFormat(contentWidth-136, 5, m.value, "", 0, "L", false, 0, "")
		my += 12.5
	}
	y += 60

	sectionLabel(pdf, y, "DATA DASHBOARD")
	y += 6

	es := edgeTotals(r)
	wastePct, grossSquares := orderFigures(r)

	// Total area card
	setFill(pdf, navyPanel)
	setDraw(pdf, cyanAccent)
	pdf.SetLineWidth(0.35)
	pdf.RoundedRect(marginLeft, y, 72, 26, 2, "1234", "FD")
	pdf.SetFont("Helvetica", "B", 6)
	setText(pdf, skyMuted)
	pdf.SetXY(marginLeft+5, y+4)
	pdf.CellFormat(62, 3, "TOTAL AREA (3D)", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 21)
	setText(pdf, cyanAccent)
	pdf.SetXY(marginLeft+5, y+8)
	pdf.CellFormat(62, 9, groupThousands(r.TotalTrueAreaSqft, 0), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, skyMuted)
	pdf.SetXY(marginLeft+5, y+18)
	pdf.CellFormat(62, 4, fmt.Sprintf("sq ft (%s sq m)", groupThousands(r.TotalTrueAreaSqm, 1)), "", 0, "L", false, 0, "")

	// Pitch and facet tags
	tagX := marginLeft + 76.0
	setDraw(pdf, cyanAccent)
	pdf.SetLineWidth(0.2)
	pdf.RoundedRect(tagX, y, 62, 26, 2, "1234", "D")
	tags := []string{
		fmt.Sprintf("PITCH: %s (%.1f\xb0)", r.PitchRatio, r.PitchDegrees),
		fmt.Sprintf("%d FACETS | FACING %s", len(r.Segments), cardinalOf(r)),
		fmt.Sprintf("WASTE: %d%% | MULTIPLIER %.3fx", wastePct, r.AreaMultiplier),
	}
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, cyanAccent)
	ty := y + 4.5
	for _, tag := range tags {
		pdf.SetXY(tagX+4, ty)
		pdf.CellFormat(54, 4, tag, "", 0, "L", false, 0, "")
		ty += 6.5
	}

	// Squares badge
	sqX := marginLeft + 142.0
	setFill(pdf, navyPanel)
	setDraw(pdf, cyanAccent)
	pdf.SetLineWidth(0.5)
	pdf.RoundedRect(sqX, y, contentWidth-142, 26, 3, "1234", "FD")
	pdf.SetFont("Helvetica", "B", 24)
	setText(pdf, cyanAccent)
	pdf.SetXY(sqX, y+5)
	pdf.CellFormat(contentWidth-142, 10, strconv.Itoa(int(math.Round(grossSquares))), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 7)
	setText(pdf, skyMuted)
	pdf.SetXY(sqX, y+17)
	pdf.CellFormat(contentWidth-142, 4, "SQUARES", "", 0, "C", false, 0, "")
	y += 32

	sectionLabel(pdf, y, "LINEAR MEASUREMENTS")
	y += 6

	setFill(pdf, navyPanel)
	setDraw(pdf, cyanAccent)
	pdf.SetLineWidth(0.2)
	pdf.RoundedRect(marginLeft, y, contentWidth, 12, 2, "1234", "FD")
	linear := []struct {
		label string
		feet  float64
	}{
		{"RIDGE", es.RidgeFt},
		{"HIP", es.HipFt},
		{"VALLEY", es.ValleyFt},
		{"EAVES", es.EaveFt},
		{"RAKE", es.RakeFt},
		{"TOTAL", es.TotalFt},
	}
	lw := contentWidth / float64(len(linear))
	for i, item := range linear {
		x := marginLeft + float64(i)*lw
		pdf.SetFont("Helvetica", "", 7)
		setText(pdf, skyMuted)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(lw, 3, item.label, "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		setText(pdf, rgb{R: 255, G: 255, B: 255})
		pdf.SetXY(x, y+5.5)
		pdf.CellFormat(lw, 5, fmt.Sprintf("%.0f ft", item.feet), "", 0, "C", false, 0, "")
	}
	y += 18

	// Quality badges
	badges := []string{
		fmt.Sprintf("%s QUALITY", r.ImageryQuality),
		providerLabel(r.Provider),
		fmt.Sprintf("CONFIDENCE: %.0f%%", r.ConfidenceScore),
	}
	pdf.SetFont("Helvetica", "B", 7)
	totalW := 0.0
	for _, b := range badges {
		totalW += pdf.GetStringWidth(b) + 14
	}
	bx := marginLeft + (contentWidth-totalW)/2
	for _, b := range badges {
		w := pdf.GetStringWidth(b) + 10
		setFill(pdf, navyPanel)
		setDraw(pdf, cyanAccent)
		pdf.SetLineWidth(0.2)
		pdf.RoundedRect(bx, y, w, 7, 3.5, "1234", "FD")
		setText(pdf, cyanAccent)
		pdf.SetXY(bx, y+1.5)
		pdf.CellFormat(w, 4, b, "", 0, "C", false, 0, "")
		bx += w + 4
	}
	y += 12

	// Quality notes, when the imagery warrants caution
	if len(r.QualityNotes) > 0 {
		pdf.SetFont("Helvetica", "I", 7)
		setText(pdf, skyMuted)
		for _, note := range r.QualityNotes {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(contentWidth, 4, "NOTE: "+note, "", 0, "L", false, 0, "")
			y += 4
		}
	}

	pdf.SetFont("Helvetica", "", 7)
	setText(pdf, rgb{R: 90, G: 122, B: 150})
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4,
		fmt.Sprintf("Reuse Canada | Professional Roof Measurement Services | %s", reportNumber(r)),
		"", 0, "C", false, 0, "")

	return nil
}

// renderImageryQRs draws the satellite QR plus the four street-view
// heading QRs in a grid starting at y.
func renderImageryQRs(pdf *fpdf.Fpdf, r *model.RoofReport, y float64) error {
	if err := drawQR(pdf, "qr_satellite", r.Imagery.Satellite, marginLeft, y, 44); err != nil {
		return err
	}
	qrCaption(pdf, marginLeft, y+45, 44, "SATELLITE (TOP-DOWN)")

	views := []struct {
		name    string
		url     string
		caption string
	}{
		{"qr_north", r.Imagery.North, "NORTH"},
		{"qr_east", r.Imagery.East, "EAST"},
		{"qr_south", r.Imagery.South, "SOUTH"},
		{"qr_west", r.Imagery.West, "WEST"},
	}
	for i, v := range views {
		x := marginLeft + 52 + float64(i%2)*28
		vy := y + float64(i/2)*28
		if err := drawQR(pdf, v.name, v.url, x, vy, 22); err != nil {
			return err
		}
		qrCaption(pdf, x, vy+22.5, 22, v.caption)
	}
	return nil
}

// drawQR encodes url as a QR code and places it on the page. Empty
// URLs are skipped so offline reports render cleanly.
func drawQR(pdf *fpdf.Fpdf, name, url string, x, y, size float64) error {
	if url == "" {
		return nil
	}
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate %s: %w", name, err)
	}
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func qrCaption(pdf *fpdf.Fpdf, x, y, w float64, caption string) {
	pdf.SetFont("Helvetica", "", 6)
	setText(pdf, skyMuted)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 3, caption, "", 0, "C", false, 0, "")
}

// sectionLabel draws a centered cyan section heading on the dark page.
func sectionLabel(pdf *fpdf.Fpdf, y float64, label string) {
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, cyanAccent)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 4, label, "", 0, "C", false, 0, "")
}

// renderMaterialsPage draws the light-theme material order page.
func renderMaterialsPage(pdf *fpdf.Fpdf, r *model.RoofReport) {
	setFill(pdf, pageTint)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	pdf.SetFont("Helvetica", "B", 17)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "MATERIAL ORDER CALCULATION", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, blueSteel)
	pdf.SetXY(marginLeft, marginTop+8)
	pdf.CellFormat(contentWidth, 4, fullAddress(r.Location), "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, marginTop+12.5)
	pdf.CellFormat(contentWidth, 4, "Report #: "+reportNumber(r), "", 0, "C", false, 0, "")

	y := marginTop + 20.0
	es := edgeTotals(r)
	wastePct, grossSquares := orderFigures(r)
	netSquares := round1(r.TotalTrueAreaSqft / 100)

	y = drawOrderSection(pdf, y, "PRIMARY ROOFING MATERIALS", []orderRow{
		{"Shingles", fmt.Sprintf("%d squares + %d%% waste = %d squares",
			int(math.Round(netSquares)), wastePct, int(math.Round(grossSquares)))},
		{"Underlayment", groupThousands(r.TotalTrueAreaSqft, 0) + " sq ft"},
		{"Starter Strip", fmt.Sprintf("%.0f ft", es.EaveFt)},
	})

	y = drawOrderSection(pdf, y, "ACCESSORIES", []orderRow{
		{"Ridge Cap", fmt.Sprintf("%.0f ft", es.RidgeFt)},
		{"Hip & Ridge Shingles", fmt.Sprintf("%.0f ft", es.RidgeFt+es.HipFt)},
		{"Drip Edge", fmt.Sprintf("%.0f ft", es.EaveFt+es.RakeFt)},
		{"Valley Metal", fmt.Sprintf("%.0f ft", es.ValleyFt)},
	})

	y = drawOrderSection(pdf, y, "VENTILATION & FASTENERS", []orderRow{
		{"Ridge Vent", fmt.Sprintf("%.0f ft", es.RidgeFt)},
		{"Pipe Boots", strconv.Itoa(pipeBootCount(len(r.Segments)))},
		{"Roofing Nails", fmt.Sprintf("%d lbs", nailPounds(grossSquares))},
		{"Roof Cement", fmt.Sprintf("%d tubes", cementTubeCount(grossSquares))},
	})

	if r.Materials != nil {
		y = drawLineItemTable(pdf, y, r.Materials)
	}

	if len(r.WasteTable) > 0 {
		rows := make([]orderRow, 0, len(r.WasteTable))
		for _, w := range r.WasteTable {
			rows = append(rows, orderRow{
				label: fmt.Sprintf("%d%% Waste (%s)", w.WastePct, w.Description),
				value: fmt.Sprintf("%s sqft = %.1f squares (%d bundles)",
					groupThousands(w.GrossSqft, 0), w.Squares, w.Bundles),
			})
		}
		y = drawOrderSection(pdf, y, "WASTE COMPARISON TABLE", rows)
	}

	// Bottom badges
	badgeW := (contentWidth - 8) / 2
	totalCost := 0.0
	if r.Materials != nil {
		totalCost = r.Materials.TotalCost
	}
	drawBadgeBox(pdf, marginLeft, y, badgeW, "WASTE FACTOR", fmt.Sprintf("%d%%", wastePct))
	drawBadgeBox(pdf, marginLeft+badgeW+8, y, badgeW, "TOTAL MATERIAL COST", money(totalCost)+" CAD")

	pdf.SetFont("Helvetica", "", 7)
	setText(pdf, rgb{R: 90, G: 122, B: 150})
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4,
		fmt.Sprintf("Reuse Canada | Material Order Calculation | %s", reportNumber(r)),
		"", 0, "C", false, 0, "")
}

// orderRow is one label/value row inside a material order section.
type orderRow struct {
	label string
	value string
}

// drawOrderSection renders a white section box with a navy accent bar
// and returns the y position below it.
func drawOrderSection(pdf *fpdf.Fpdf, y float64, title string, rows []orderRow) float64 {
	height := 8.0 + float64(len(rows))*5.5 + 2.5
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.Rect(marginLeft, y, contentWidth, height, "F")
	setFill(pdf, navyInk)
	pdf.Rect(marginLeft, y, 1.4, height, "F")

	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft+6, y+2)
	pdf.CellFormat(contentWidth-12, 4.5, title, "", 0, "L", false, 0, "")
	setDraw(pdf, boxBorder)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft+6, y+7.5, pageWidth-marginRight-6, y+7.5)

	ry := y + 8.5
	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 8)
		setText(pdf, blueSteel)
		pdf.SetXY(marginLeft+6, ry)
		pdf.CellFormat(100, 5, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8.5)
		setText(pdf, navyInk)
		pdf.SetXY(marginLeft+106, ry)
		pdf.CellFormat(contentWidth-112, 5, row.value, "", 0, "R", false, 0, "")
		ry += 5.5
	}

	return y + height + 3
}

// drawLineItemTable renders the priced bill of materials and returns
// the y position below it.
func drawLineItemTable(pdf *fpdf.Fpdf, y float64, mat *model.MaterialEstimate) float64 {
	colWidths := []float64{64, 20, 16, 24, 28, 35.9}
	headers := []string{"Item", "Net Qty", "Waste", "Order", "Unit Price", "Line Total"}

	pdf.SetFont("Helvetica", "B", 7.5)
	setFill(pdf, navyInk)
	setText(pdf, rgb{R: 255, G: 255, B: 255})
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 5.5, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 5.5

	pdf.SetFont("Helvetica", "", 7.5)
	setText(pdf, rgb{R: 26, G: 26, B: 46})
	for i, item := range mat.LineItems {
		if i%2 == 0 {
			setFill(pdf, rgb{R: 245, G: 249, B: 253})
		} else {
			setFill(pdf, rgb{R: 255, G: 255, B: 255})
		}
		row := []string{
			item.Description,
			fmt.Sprintf("%.0f %s", item.NetQuantity, item.Unit),
			fmt.Sprintf("%.0f%%", item.WastePct),
			fmt.Sprintf("%.0f %s", item.OrderQuantity, item.OrderUnit),
			money(item.UnitPrice),
			money(item.LineTotal),
		}
		aligns := []string{"L", "R", "C", "R", "R", "R"}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, aligns[j], true, 0, "")
			x += colWidths[j]
		}
		y += 5
	}

	pdf.SetFont("Helvetica", "B", 8)
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3]+colWidths[4], 5.5,
		"TOTAL MATERIAL COST", "1", 0, "R", true, 0, "")
	pdf.SetXY(marginLeft+contentWidth-colWidths[5], y)
	pdf.CellFormat(colWidths[5], 5.5, money(mat.TotalCost), "1", 0, "R", true, 0, "")

	return y + 5.5 + 3
}

// drawBadgeBox renders one of the bottom summary badges on page 2.
func drawBadgeBox(pdf *fpdf.Fpdf, x, y, w float64, label, value string) {
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	setDraw(pdf, navyInk)
	pdf.SetLineWidth(0.7)
	pdf.RoundedRect(x, y, w, 15, 2.5, "1234", "FD")
	pdf.SetFont("Helvetica", "B", 8)
	setText(pdf, navyInk)
	pdf.SetXY(x, y+2.5)
	pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y+7.5)
	pdf.CellFormat(w, 6, value, "", 0, "C", false, 0, "")
}

// renderMeasurementsPage draws the detailed measurement breakdown.
func renderMeasurementsPage(pdf *fpdf.Fpdf, r *model.RoofReport) {
	setFill(pdf, rgb{R: 224, G: 236, B: 245})
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	// Header bar
	setFill(pdf, navyInk)
	pdf.RoundedRect(marginLeft, marginTop, contentWidth, 22, 2.5, "1234", "F")
	pdf.SetFont("Helvetica", "B", 15)
	setText(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.SetXY(marginLeft+6, marginTop+4)
	pdf.CellFormat(90, 7, "DETAILED ROOF", "", 0, "L", false, 0, "")
	pdf.SetXY(marginLeft+6, marginTop+11)
	pdf.CellFormat(90, 7, "MEASUREMENTS", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7.5)
	setText(pdf, textLight)
	metaX := marginLeft + 86.0
	metaW := contentWidth - 92
	pdf.SetXY(metaX, marginTop+4)
	pdf.CellFormat(metaW, 4, "Property: "+fullAddress(r.Location), "", 0, "R", false, 0, "")
	pdf.SetXY(metaX, marginTop+9)
	pdf.CellFormat(metaW, 4, "Report #: "+reportNumber(r), "", 0, "R", false, 0, "")
	pdf.SetXY(metaX, marginTop+14)
	pdf.CellFormat(metaW, 4, "Accuracy: "+r.AccuracyBenchmark, "", 0, "R", false, 0, "")

	y := marginTop + 27.0
	colW := (contentWidth - 6) / 2
	boxH := 92.0

	// Facet breakdown (left)
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.Rect(marginLeft, y, colW, boxH, "F")
	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft+5, y+3)
	pdf.CellFormat(colW-10, 5, "FACET BREAKDOWN", "", 0, "L", false, 0, "")
	setDraw(pdf, boxBorder)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft+5, y+9, marginLeft+colW-5, y+9)

	fy := y + 11.0
	maxFacets := 15
	for i, s := range r.Segments {
		if i == maxFacets {
			pdf.SetFont("Helvetica", "I", 8)
			setText(pdf, blueSteel)
			pdf.SetXY(marginLeft+5, fy)
			pdf.CellFormat(colW-10, 5, fmt.Sprintf("+ %d more facets", len(r.Segments)-maxFacets), "", 0, "L", false, 0, "")
			break
		}
		pdf.SetFont("Helvetica", "B", 8)
		setText(pdf, navyInk)
		pdf.SetXY(marginLeft+5, fy)
		pdf.CellFormat(22, 5, fmt.Sprintf("Facet %d:", i+1), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		setText(pdf, blueSteel)
		pdf.SetXY(marginLeft+27, fy)
		pdf.CellFormat(colW-32, 5,
			fmt.Sprintf("%s sq ft | Pitch: %s | Facing: %s",
				groupThousands(s.TrueAreaSqft, 0), s.PitchRatio, s.AzimuthDirection),
			"", 0, "L", false, 0, "")
		fy += 5.3
	}

	// Linear measurements and penetrations (right)
	rx := marginLeft + colW + 6
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.Rect(rx, y, colW, boxH, "F")
	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, navyInk)
	pdf.SetXY(rx+5, y+3)
	pdf.CellFormat(colW-10, 5, "LINEAR MEASUREMENTS", "", 0, "L", false, 0, "")
	setDraw(pdf, boxBorder)
	pdf.Line(rx+5, y+9, rx+colW-5, y+9)

	es := edgeTotals(r)
	lines := []struct {
		kind model.EdgeType
		name string
		feet float64
	}{
		{model.EdgeRidge, "Ridge", es.RidgeFt},
		{model.EdgeHip, "Hip", es.HipFt},
		{model.EdgeValley, "Valley", es.ValleyFt},
		{model.EdgeEave, "Eaves", es.EaveFt},
		{model.EdgeRake, "Rake", es.RakeFt},
	}
	ly := y + 11.0
	for _, line := range lines {
		col := edgeColors[line.kind]
		setFill(pdf, col)
		pdf.Rect(rx+5, ly+1, 4, 4, "F")
		pdf.SetFont("Helvetica", "", 8.5)
		setText(pdf, blueSteel)
		pdf.SetXY(rx+11, ly)
		pdf.CellFormat(40, 5.5, line.name+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8.5)
		setText(pdf, navyInk)
		pdf.SetXY(rx+colW-35, ly)
		pdf.CellFormat(30, 5.5, fmt.Sprintf("%.0f ft", line.feet), "", 0, "R", false, 0, "")
		ly += 6.2
	}

	ly += 3
	pdf.SetFont("Helvetica", "B", 8.5)
	setText(pdf, navyInk)
	pdf.SetXY(rx+5, ly)
	pdf.CellFormat(colW-10, 5, "PENETRATIONS (ESTIMATED)", "", 0, "L", false, 0, "")
	setDraw(pdf, boxBorder)
	pdf.Line(rx+5, ly+5.5, rx+colW-5, ly+5.5)
	ly += 7

	pens := []struct {
		label string
		count int
	}{
		{"Pipe Boots", pipeBootCount(len(r.Segments))},
		{"Chimney", chimneyCount(len(r.Segments))},
		{"Exhaust Vents", exhaustVentCount(len(r.Segments))},
	}
	for _, p := range pens {
		pdf.SetFont("Helvetica", "", 8.5)
		setText(pdf, blueSteel)
		pdf.SetXY(rx+5, ly)
		pdf.CellFormat(50, 5, p.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8.5)
		setText(pdf, navyInk)
		pdf.SetXY(rx+colW-35, ly)
		pdf.CellFormat(30, 5, strconv.Itoa(p.count), "", 0, "R", false, 0, "")
		ly += 5.5
	}

	y += boxH + 6

	// Report summary stats
	_, grossSquares := orderFigures(r)
	totalCost := 0.0
	if r.Materials != nil {
		totalCost = r.Materials.TotalCost
	}
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.RoundedRect(marginLeft, y, contentWidth, 26, 2.5, "1234", "F")
	pdf.SetFont("Helvetica", "B", 8.5)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, y+3)
	pdf.CellFormat(contentWidth, 4, "REPORT SUMMARY", "", 0, "C", false, 0, "")
	drawStatCell(pdf, marginLeft+6, y+9, (contentWidth-24)/3, "TOTAL AREA",
		groupThousands(r.TotalTrueAreaSqft, 0)+" sq ft")
	drawStatCell(pdf, marginLeft+12+(contentWidth-24)/3, y+9, (contentWidth-24)/3, "ROOFING SQUARES",
		fmt.Sprintf("%.1f gross", grossSquares))
	drawStatCell(pdf, marginLeft+18+2*(contentWidth-24)/3, y+9, (contentWidth-24)/3, "MATERIAL COST",
		money(totalCost))
	y += 32

	// Solar potential
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.RoundedRect(marginLeft, y, contentWidth, 26, 2.5, "1234", "F")
	pdf.SetFont("Helvetica", "B", 8.5)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, y+3)
	pdf.CellFormat(contentWidth, 4, "SOLAR POTENTIAL", "", 0, "C", false, 0, "")
	drawStatCell(pdf, marginLeft+6, y+9, (contentWidth-24)/3, "MAX SUNSHINE",
		groupThousands(r.Solar.MaxSunshineHours, 1)+" hrs/yr")
	drawStatCell(pdf, marginLeft+12+(contentWidth-24)/3, y+9, (contentWidth-24)/3, "PANEL CAPACITY",
		fmt.Sprintf("%d panels", r.Solar.PanelsPossible))
	drawStatCell(pdf, marginLeft+18+2*(contentWidth-24)/3, y+9, (contentWidth-24)/3, "ENERGY YIELD",
		groupThousands(r.Solar.YearlyEnergyKwh, 0)+" kWh/yr")

	pdf.SetFont("Helvetica", "", 7)
	setText(pdf, rgb{R: 90, G: 122, B: 150})
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4,
		fmt.Sprintf("\xa9 %d Reuse Canada | Professional Roof Measurement Reports | %s | v%s",
			reportYear(r), reportNumber(r), r.Version),
		"", 0, "C", false, 0, "")
}

// drawStatCell renders one tinted stat cell in a summary strip.
func drawStatCell(pdf *fpdf.Fpdf, x, y, w float64, label, value string) {
	setFill(pdf, rgb{R: 239, G: 246, B: 255})
	pdf.RoundedRect(x, y, w, 13, 1.5, "1234", "F")
	pdf.SetFont("Helvetica", "", 6)
	setText(pdf, rgb{R: 71, G: 85, B: 105})
	pdf.SetXY(x, y+2)
	pdf.CellFormat(w, 3, label, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, rgb{R: 29, G: 78, B: 216})
	pdf.SetXY(x, y+5.5)
	pdf.CellFormat(w, 6, value, "", 0, "C", false, 0, "")
}

// renderRecoveryPage draws the RAS yield analysis page.
func renderRecoveryPage(pdf *fpdf.Fpdf, r *model.RoofReport) {
	ras := r.RASYield

	setFill(pdf, pageTint)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	pdf.SetFont("Helvetica", "B", 17)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "RAS YIELD & RECOVERY ANALYSIS", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, blueSteel)
	pdf.SetXY(marginLeft, marginTop+8)
	pdf.CellFormat(contentWidth, 4, "Recycled asphalt shingle recovery projection | "+fullAddress(r.Location), "", 0, "C", false, 0, "")

	y := marginTop + 18.0

	// Headline stats
	cellW := (contentWidth - 24) / 3
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	pdf.RoundedRect(marginLeft, y, contentWidth, 22, 2.5, "1234", "F")
	drawStatCell(pdf, marginLeft+6, y+4, cellW, "TEAR-OFF WEIGHT",
		groupThousands(ras.EstimatedWeightLbs, 0)+" lbs")
	drawStatCell(pdf, marginLeft+12+cellW, y+4, cellW, "RECOVERY RATE",
		fmt.Sprintf("%.1f%%", ras.RecoveryRatePct))
	drawStatCell(pdf, marginLeft+18+2*cellW, y+4, cellW, "MARKET VALUE",
		money(ras.MarketValueTotal)+" CAD")
	y += 27

	// Per-segment yield table
	colWidths := []float64{40, 18, 24, 28, 24, 28, 25.9}
	headers := []string{"Segment", "Pitch", "Area", "Stream", "Oil (gal)", "Granules", "Fiber"}
	pdf.SetFont("Helvetica", "B", 7.5)
	setFill(pdf, navyInk)
	setText(pdf, rgb{R: 255, G: 255, B: 255})
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 5.5, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 5.5

	pdf.SetFont("Helvetica", "", 7.5)
	setText(pdf, rgb{R: 26, G: 26, B: 46})
	for i, seg := range ras.Segments {
		if i%2 == 0 {
			setFill(pdf, rgb{R: 245, G: 249, B: 253})
		} else {
			setFill(pdf, rgb{R: 255, G: 255, B: 255})
		}
		row := []string{
			seg.SegmentName,
			seg.PitchRatio,
			fmt.Sprintf("%.0f sqft", seg.AreaSqft),
			streamLabel(seg.RecoveryClass),
			fmt.Sprintf("%.1f", seg.BinderOilGal),
			fmt.Sprintf("%.0f lbs", seg.GranulesLbs),
			fmt.Sprintf("%.0f lbs", seg.FiberLbs),
		}
		aligns := []string{"L", "C", "R", "C", "R", "R", "R"}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, aligns[j], true, 0, "")
			x += colWidths[j]
		}
		y += 5
	}

	pdf.SetFont("Helvetica", "B", 7.5)
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	setText(pdf, navyInk)
	totals := []string{
		"TOTALS",
		"",
		fmt.Sprintf("%.0f sqft", ras.TotalAreaSqft),
		"",
		fmt.Sprintf("%.1f", ras.TotalBinderOilGal),
		fmt.Sprintf("%.0f lbs", ras.TotalGranulesLbs),
		fmt.Sprintf("%.0f lbs", ras.TotalFiberLbs),
	}
	aligns := []string{"L", "C", "R", "C", "R", "R", "R"}
	x = marginLeft
	for j, cell := range totals {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[j], 5.5, cell, "1", 0, aligns[j], true, 0, "")
		x += colWidths[j]
	}
	y += 10

	// Slope distribution bar
	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 5, "SLOPE DISTRIBUTION BY AREA", "", 0, "L", false, 0, "")
	y += 6
	dist := ras.SlopeDistribution
	shares := []struct {
		pct   float64
		label string
		color rgb
	}{
		{dist.LowPitchPct, "LOW", rgb{R: 67, G: 160, B: 71}},
		{dist.MediumPitchPct, "MEDIUM", rgb{R: 255, G: 152, B: 0}},
		{dist.HighPitchPct, "HIGH", rgb{R: 229, G: 57, B: 53}},
	}
	bx := marginLeft
	for _, s := range shares {
		w := contentWidth * s.pct / 100
		if w <= 0 {
			continue
		}
		setFill(pdf, s.color)
		pdf.Rect(bx, y, w, 8, "F")
		if w > 18 {
			pdf.SetFont("Helvetica", "B", 7)
			setText(pdf, rgb{R: 255, G: 255, B: 255})
			pdf.SetXY(bx, y+2)
			pdf.CellFormat(w, 4, fmt.Sprintf("%s %.1f%%", s.label, s.pct), "", 0, "C", false, 0, "")
		}
		bx += w
	}
	y += 14

	// Market valuation
	y = drawOrderSection(pdf, y, "MARKET VALUATION", []orderRow{
		{fmt.Sprintf("Binder Oil (%.1f gal)", ras.TotalBinderOilGal), money(ras.MarketValueOil)},
		{fmt.Sprintf("Granules (%s lbs)", groupThousands(ras.TotalGranulesLbs, 0)), money(ras.MarketValueGranules)},
		{fmt.Sprintf("Fiber (%s lbs)", groupThousands(ras.TotalFiberLbs, 0)), money(ras.MarketValueFiber)},
		{"Total Recoverable Value", money(ras.MarketValueTotal)},
	})

	// Processing recommendation
	setFill(pdf, rgb{R: 255, G: 255, B: 255})
	setDraw(pdf, navyInk)
	pdf.SetLineWidth(0.5)
	pdf.RoundedRect(marginLeft, y, contentWidth, 26, 2.5, "1234", "FD")
	pdf.SetFont("Helvetica", "B", 8.5)
	setText(pdf, navyInk)
	pdf.SetXY(marginLeft+5, y+3)
	pdf.CellFormat(contentWidth-10, 4, "PROCESSING RECOMMENDATION", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8.5)
	setText(pdf, blueSteel)
	pdf.SetXY(marginLeft+5, y+8.5)
	pdf.MultiCell(contentWidth-10, 4.2, ras.Recommendation, "", "L", false)

	pdf.SetFont("Helvetica", "", 7)
	setText(pdf, rgb{R: 90, G: 122, B: 150})
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4,
		fmt.Sprintf("Reuse Canada | RAS Recovery Analysis | %s", reportNumber(r)),
		"", 0, "C", false, 0, "")
}

// streamLabel renders a recovery class for print.
func streamLabel(c model.RecoveryClass) string {
	return strings.ToUpper(strings.ReplaceAll(string(c), "_", " "))
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.R, c.G, c.B) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.R, c.G, c.B) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.R, c.G, c.B) }

// reportNumber builds the printed reference from the generation date
// and the short report id, e.g. RM-20250614-A1B2C3D4.
func reportNumber(r *model.RoofReport) string {
	return fmt.Sprintf("RM-%s-%s", generatedAt(r).Format("20060102"), strings.ToUpper(r.ReportID))
}

func reportDate(r *model.RoofReport) string {
	return generatedAt(r).Format("January 2, 2006")
}

func reportYear(r *model.RoofReport) int {
	return generatedAt(r).Year()
}

func generatedAt(r *model.RoofReport) time.Time {
	t, err := time.Parse(time.RFC3339, r.GeneratedAt)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

// fullAddress joins the non-empty location fields for display.
func fullAddress(loc model.Location) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{loc.Address, loc.City, loc.Province, loc.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%v, %v", loc.Latitude, loc.Longitude)
	}
	return strings.Join(parts, ", ")
}

func providerLabel(provider string) string {
	if provider == "" {
		return "UNKNOWN PROVIDER"
	}
	return strings.ToUpper(strings.ReplaceAll(provider, "_", " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func cardinalOf(r *model.RoofReport) string {
	if len(r.Segments) == 0 {
		return "N/A"
	}
	return r.Segments[0].AzimuthDirection
}

// edgeTotals returns the edge summary or a zero value when the report
// has no edges.
func edgeTotals(r *model.RoofReport) model.EdgeSummary {
	if r.EdgeSummary != nil {
		return *r.EdgeSummary
	}
	return model.EdgeSummary{}
}

// orderFigures returns the waste percentage and gross squares used on
// the customer-facing pages, falling back to the standard 10% overage
// when no material estimate was produced.
func orderFigures(r *model.RoofReport) (int, float64) {
	if r.Materials != nil {
		return int(r.Materials.WastePct), r.Materials.GrossSquares
	}
	return 10, round1(r.TotalTrueAreaSqft / 100)
}

// Rule-of-thumb penetration counts scaled from the facet count, quoted
// when no field inspection data is available.

func pipeBootCount(segments int) int {
	if n := segments / 2; n > 2 {
		return n
	}
	return 2
}

func chimneyCount(segments int) int {
	if segments >= 6 {
		return 1
	}
	return 0
}

func exhaustVentCount(segments int) int {
	if n := segments / 3; n > 1 {
		return n
	}
	return 1
}

func nailPounds(grossSquares float64) int {
	return int(math.Ceil(grossSquares * 1.5))
}

func cementTubeCount(grossSquares float64) int {
	if n := int(math.Ceil(grossSquares / 15)); n > 2 {
		return n
	}
	return 2
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// money formats a CAD amount with thousands separators.
func money(amount float64) string {
	return "$" + groupThousands(amount, 2)
}

// groupThousands formats n with comma separators and the given number
// of decimal places.
func groupThousands(n float64, decimals int) string {
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if neg {
		return "-" + intPart + fracPart
	}
	return intPart + fracPart
}
