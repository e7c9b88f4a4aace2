package export

import (
	"fmt"
	"math"

	"github.com/reusecanada/roofline/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// Layer names for the roof plan schematic.
const (
	layerEave   = "EAVE"
	layerRidge  = "RIDGE"
	layerHip    = "HIP"
	layerValley = "VALLEY"
	layerRake   = "RAKE"
	layerLabels = "LABELS"
)

// planDrawer wraps a DXF drawing and records the first error so the
// plan routines can chain calls without per-line checks.
type planDrawer struct {
	d   *drawing.Drawing
	err error
}

func (p *planDrawer) layer(name string, c color.ColorNumber) {
	if p.err != nil {
		return
	}
	if _, err := p.d.AddLayer(name, c, dxf.DefaultLineType, true); err != nil {
		p.err = fmt.Errorf("add layer %s: %w", name, err)
	}
}

func (p *planDrawer) use(name string) {
	if p.err != nil {
		return
	}
	if err := p.d.ChangeLayer(name); err != nil {
		p.err = fmt.Errorf("change layer %s: %w", name, err)
	}
}

func (p *planDrawer) line(x1, y1, x2, y2 float64) {
	if p.err != nil {
		return
	}
	if _, err := p.d.Line(x1, y1, 0, x2, y2, 0); err != nil {
		p.err = err
	}
}

func (p *planDrawer) text(s string, x, y, height float64) {
	if p.err != nil {
		return
	}
	if _, err := p.d.Text(s, x, y, 0, height); err != nil {
		p.err = err
	}
}

// ExportDXF writes a CAD plan schematic of the synthetic roof model.
// Edge families land on their own layers so crews can toggle them in
// any DXF viewer. Units are feet; the drawing is a schematic of the
// modeled rectangle, not a survey.
func ExportDXF(path string, r *model.RoofReport) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}
	if r.TotalFootprintSqft <= 0 || len(r.Edges) == 0 {
		return fmt.Errorf("no roof geometry to draw")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	// Same plan rectangle the edge model measures.
	width := math.Sqrt(r.TotalFootprintSqft / 1.5)
	length := 1.5 * width

	hipLayout := false
	for _, e := range r.Edges {
		if e.Type == model.EdgeHip {
			hipLayout = true
			break
		}
	}

	p := &planDrawer{d: dxf.NewDrawing()}
	p.layer(layerEave, color.Yellow)
	p.layer(layerRidge, color.Red)
	p.layer(layerHip, color.Blue)
	p.layer(layerValley, color.Green)
	p.layer(layerRake, color.Magenta)
	p.layer(layerLabels, color.White)

	// Perimeter
	p.use(layerEave)
	p.line(0, 0, length, 0)
	p.line(length, 0, length, width)
	p.line(length, width, 0, width)
	p.line(0, width, 0, 0)

	// Main ridge, centered along the long axis
	ridgeX1 := length * 0.075
	ridgeX2 := length * 0.925
	midY := width / 2
	p.use(layerRidge)
	p.line(ridgeX1, midY, ridgeX2, midY)

	if hipLayout {
		// Wing ridge perpendicular to the main run
		wingX := length * 0.7
		p.line(wingX, midY-width*0.25, wingX, midY+width*0.25)

		p.use(layerHip)
		p.line(0, 0, ridgeX1, midY)
		p.line(0, width, ridgeX1, midY)
		p.line(length, 0, ridgeX2, midY)
		p.line(length, width, ridgeX2, midY)

		// Valleys flare from the wing junction at 45 degrees
		k := 0.35 * width / math.Sqrt2
		p.use(layerValley)
		p.line(wingX, midY, wingX+k, midY+k)
		p.line(wingX, midY, wingX+k, midY-k)
	} else {
		// Gable ends: rakes split at the ridge line
		p.use(layerRake)
		p.line(0, 0, 0, midY)
		p.line(0, midY, 0, width)
		p.line(length, 0, length, midY)
		p.line(length, midY, length, width)
	}

	es := edgeTotals(r)
	th := width / 25

	p.use(layerLabels)
	p.text(fmt.Sprintf("ROOF PLAN - %s", fullAddress(r.Location)), 0, width+4*th, th*1.4)
	p.text(fmt.Sprintf("PLAN %.0f FT x %.0f FT (SCHEMATIC - NOT TO SCALE)", length, width), 0, width+2*th, th)
	p.text(fmt.Sprintf("RIDGE %.0f FT", es.RidgeFt), length*0.40, midY+th/2, th)
	p.text(fmt.Sprintf("EAVES %.0f FT", es.EaveFt), length*0.40, th/2, th)
	if es.HipFt > 0 {
		p.text(fmt.Sprintf("HIPS %.0f FT", es.HipFt), length*0.03, width*0.25, th)
	}
	if es.ValleyFt > 0 {
		p.text(fmt.Sprintf("VALLEYS %.0f FT", es.ValleyFt), length*0.72, width*0.72, th)
	}
	if es.RakeFt > 0 {
		p.text(fmt.Sprintf("RAKES %.0f FT", es.RakeFt), length*0.02, width*0.75, th)
	}

	if p.err != nil {
		return fmt.Errorf("draw roof plan: %w", p.err)
	}
	if err := p.d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}
