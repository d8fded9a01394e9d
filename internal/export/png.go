package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"briefy/internal/models"
)

const (
	nodeWidth  = 180.0
	nodeHeight = 64.0
	margin     = 40.0
	arrowSize  = 10.0
)

// PNGOptions tunes FlowchartPNG. A blank FontPath keeps gg's built-in face,
// which only covers ASCII well.
type PNGOptions struct {
	Width    int
	FontPath string
	FontSize float64
}

// FlowchartPNG draws the graph at its stored positions, scaled to fit
// opts.Width.
func FlowchartPNG(w io.Writer, g *models.FlowchartGraph, opts PNGOptions) error {
	if g == nil || len(g.Nodes) == 0 {
		return ErrNoFlowchart
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+nodeWidth)
		maxY = math.Max(maxY, n.Position.Y+nodeHeight)
	}
	contentW := maxX - minX
	scale := 1.0
	if avail := float64(opts.Width) - 2*margin; contentW > avail {
		scale = avail / contentW
	}
	height := int(math.Ceil((maxY-minY)*scale + 2*margin))

	// box returns the scaled top-left corner of a node.
	box := func(p models.Position) (float64, float64) {
		return margin + (p.X-minX)*scale, margin + (p.Y-minY)*scale
	}
	centers := make(map[string][2]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		x, y := box(n.Position)
		centers[n.ID] = [2]float64{x + nodeWidth*scale/2, y + nodeHeight*scale/2}
	}

	dc := gg.NewContext(opts.Width, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	if opts.FontPath != "" {
		face, err := loadFontFace(opts.FontPath, opts.FontSize*scale)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
	}

	dc.SetHexColor("#666666")
	dc.SetLineWidth(2)
	for _, e := range g.Edges {
		from, okFrom := centers[e.Source]
		to, okTo := centers[e.Target]
		if !okFrom || !okTo {
			continue
		}
		drawArrow(dc, from, to, scale)
		if e.Label != "" {
			dc.DrawStringAnchored(e.Label, (from[0]+to[0])/2, (from[1]+to[1])/2, 0.5, 0.5)
		}
	}

	for _, n := range g.Nodes {
		x, y := box(n.Position)
		bw, bh := nodeWidth*scale, nodeHeight*scale
		drawNodeShape(dc, n.Type, x, y, bw, bh)
		dc.SetHexColor(colorFor(n.Type).hex)
		dc.FillPreserve()
		dc.SetHexColor("#333333")
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.SetHexColor("#000000")
		dc.DrawStringWrapped(n.Label, x+bw/2, y+bh/2, 0.5, 0.5, bw-12, 1.2, gg.AlignCenter)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawNodeShape(dc *gg.Context, t models.NodeType, x, y, w, h float64) {
	switch t {
	case models.NodeDecision:
		dc.MoveTo(x+w/2, y)
		dc.LineTo(x+w, y+h/2)
		dc.LineTo(x+w/2, y+h)
		dc.LineTo(x, y+h/2)
		dc.ClosePath()
	case models.NodeInput, models.NodeOutput:
		dc.DrawRoundedRectangle(x, y, w, h, h/2)
	default:
		dc.DrawRoundedRectangle(x, y, w, h, 6)
	}
}

// drawArrow connects two node centers, stopping at the target's border so the
// head stays visible.
func drawArrow(dc *gg.Context, from, to [2]float64, scale float64) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	// Distance from the center to the box edge along the direction.
	hw, hh := nodeWidth*scale/2, nodeHeight*scale/2
	inset := math.Min(hw/math.Max(math.Abs(ux), 1e-9), hh/math.Max(math.Abs(uy), 1e-9))
	tipX, tipY := to[0]-ux*inset, to[1]-uy*inset

	dc.DrawLine(from[0], from[1], tipX, tipY)
	dc.Stroke()

	dc.MoveTo(tipX, tipY)
	dc.LineTo(tipX-ux*arrowSize-uy*arrowSize/2, tipY-uy*arrowSize+ux*arrowSize/2)
	dc.LineTo(tipX-ux*arrowSize+uy*arrowSize/2, tipY-uy*arrowSize-ux*arrowSize/2)
	dc.ClosePath()
	dc.Fill()
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
