package footprint

import (
	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
	"github.com/padstack/fritz2kicad/pkg/svg"
)

// Drill sizing constants. The 0.6 mm floor keeps circular pads
// manufacturable even when the drawn pad is tiny; the ratios are
// carried over verbatim from field-tested conversions.
const (
	minCircleDrill  = 0.6
	circleDrillRate = 0.65
	rectDrillRate   = 0.6

	customOutlineSamples = 6
)

// Extract walks the drawing, matches shapes to connectors by effective
// identifier and produces calibrated pads. The returned bounding box
// is the envelope of all pad centers, used later to center the
// footprint; it is empty when no shape matched.
func Extract(doc *svg.Document, conns []fzp.Connector, scale float64) ([]Pad, sexp.BoundingBox) {
	byID := make(map[string]*fzp.Connector, len(conns))
	for i := range conns {
		if conns[i].SVGID != "" {
			byID[conns[i].SVGID] = &conns[i]
		}
	}

	var pads []Pad
	envelope := sexp.NewBoundingBox()

	doc.Walk(func(node *svg.Node) {
		conn, ok := byID[node.EffectiveID]
		if !ok {
			return
		}
		box, ok := node.BBox()
		if !ok {
			// Degenerate shape; drop this pad, not the run.
			return
		}

		pad := Pad{
			Number: conn.Pin,
			Center: sexp.Position{X: box.CenterX() * scale, Y: box.CenterY() * scale},
			Size:   sexp.Size{Width: box.Width() * scale, Height: box.Height() * scale},
		}

		if conn.ThroughHole {
			pad.Type = TypeThruHole
			pad.Layers = thruHoleLayers
		} else {
			pad.Type = TypeSMD
			pad.Layers = smdLayers
		}

		shorter := pad.Size.Width
		if pad.Size.Height < shorter {
			shorter = pad.Size.Height
		}

		switch node.Kind {
		case svg.KindCircle:
			pad.Shape = ShapeCircle
			if conn.ThroughHole {
				pad.Drill = circleDrillRate * shorter
				if pad.Drill < minCircleDrill {
					pad.Drill = minCircleDrill
				}
			}
		case svg.KindRect:
			pad.Shape = ShapeRect
			if conn.ThroughHole {
				pad.Drill = rectDrillRate * shorter
			}
		default:
			pad.Shape = ShapeCustom
			for _, pt := range node.SamplePoints(customOutlineSamples) {
				pad.Outline = append(pad.Outline, sexp.Position{
					X: pt[0] * scale,
					Y: pt[1] * scale,
				})
			}
		}

		envelope.Expand(pad.Center)
		pads = append(pads, pad)
	})

	return pads, envelope
}
