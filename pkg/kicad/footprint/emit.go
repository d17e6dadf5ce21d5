package footprint

import (
	"fmt"
	"io"
	"strings"

	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
)

// textClearance is how far above/below the pad envelope the silkscreen
// reference and fab value texts are placed.
const textClearance = 2.0

// Emit renders pads as a .kicad_mod footprint block. Every pad
// position is re-centered on the midpoint of the pad envelope so the
// footprint anchors at its own centroid.
func Emit(w io.Writer, name string, pads []Pad, envelope sexp.BoundingBox) error {
	center := envelope.Center()
	textY := envelope.Height()/2 + textClearance

	var b strings.Builder
	fmt.Fprintf(&b, "(footprint %s (layer \"F.Cu\")\n", sexp.Quote(name))
	b.WriteString("  (attr smd)\n")
	fmt.Fprintf(&b, "  (fp_text reference \"REF**\" (at 0 -%s) (layer \"F.SilkS\") (effects (font (size 1 1) (thickness 0.15))))\n",
		sexp.Fixed(textY, 2))
	fmt.Fprintf(&b, "  (fp_text value %s (at 0 %s) (layer \"F.Fab\") (effects (font (size 1 1) (thickness 0.15))))\n",
		sexp.Quote(name), sexp.Fixed(textY, 2))

	for _, pad := range pads {
		writePad(&b, pad, center)
	}
	b.WriteString(")")

	_, err := io.WriteString(w, b.String())
	return err
}

func writePad(b *strings.Builder, pad Pad, center sexp.Position) {
	at := fmt.Sprintf("(at %s %s)",
		sexp.Fixed(pad.Center.X-center.X, 4),
		sexp.Fixed(pad.Center.Y-center.Y, 4))
	size := fmt.Sprintf("(size %s %s)",
		sexp.Fixed(pad.Size.Width, 4),
		sexp.Fixed(pad.Size.Height, 4))
	layers := make([]string, len(pad.Layers))
	for i, layer := range pad.Layers {
		layers[i] = sexp.Quote(layer)
	}

	if pad.Shape == ShapeCustom {
		fmt.Fprintf(b, "  (pad %s %s custom %s %s (layers %s)",
			sexp.Quote(pad.Number), pad.Type, at, size, strings.Join(layers, " "))
		if pad.Drill > 0 {
			fmt.Fprintf(b, " (drill %s)", sexp.Fixed(pad.Drill, 4))
		}
		b.WriteString("\n    (options (clearance outline) (anchor circle))\n")
		var pts []string
		for _, pt := range pad.Outline {
			pts = append(pts, fmt.Sprintf("(xy %s %s)",
				sexp.Fixed(pt.X-center.X, 4),
				sexp.Fixed(pt.Y-center.Y, 4)))
		}
		fmt.Fprintf(b, "    (primitives (gr_poly (pts %s) (width 0))))\n", strings.Join(pts, " "))
		return
	}

	drill := ""
	if pad.Drill > 0 {
		drill = fmt.Sprintf(" (drill %s)", sexp.Fixed(pad.Drill, 4))
	}
	fmt.Fprintf(b, "  (pad %s %s %s %s %s (layers %s)%s)\n",
		sexp.Quote(pad.Number), pad.Type, pad.Shape, at, size,
		strings.Join(layers, " "), drill)
}
