// Package symbol lays out and emits a KiCad symbol library
// (.kicad_sym) for a part's connector table. Symbol generation is a
// pure function of the connector names and pin numbers; it never
// looks at drawing geometry.
package symbol

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
)

// Generator identifies this tool in emitted library headers.
const Generator = "fritz2kicad"

// formatVersion is the KiCad 6 symbol library format date.
const formatVersion = 20211014

// Layout constants on the standard 2.54 mm schematic grid.
const (
	pinSpacing = 2.54
	pinLength  = 2.54
	minHeight  = 5.08
	minWidth   = 15.24
	nameWidth  = 1.5 // body width per character of the longest pin name
)

// pinPlacement is one pin's resolved position on the body.
type pinPlacement struct {
	conn  fzp.Connector
	x, y  float64
	angle int
}

// layout computes body size and pin positions: first half of the
// connector table on the left edge pointing right, remainder on the
// right edge pointing left, stacked downward on the pin grid.
func layout(conns []fzp.Connector) (width, height float64, pins []pinPlacement) {
	count := len(conns)
	half := (count + 1) / 2

	height = float64(half) * pinSpacing
	if height < minHeight {
		height = minHeight
	}
	height += pinSpacing

	longest := 5
	for _, c := range conns {
		if n := utf8.RuneCountInString(c.Name); n > longest {
			longest = n
		}
	}
	width = float64(longest) * nameWidth
	if width < minWidth {
		width = minWidth
	}

	top := height/2 - pinSpacing/2
	for i, c := range conns {
		p := pinPlacement{conn: c}
		if i < half {
			p.x = -width/2 - pinLength
			p.y = top - float64(i)*pinSpacing
			p.angle = 0
		} else {
			p.x = width/2 + pinLength
			p.y = top - float64(i-half)*pinSpacing
			p.angle = 180
		}
		pins = append(pins, p)
	}
	return width, height, pins
}

// Emit writes a symbol library holding one symbol for the part.
// All pins render as the generic passive electrical type; the
// descriptor does not model true pin function.
func Emit(w io.Writer, name string, conns []fzp.Connector) error {
	width, height, pins := layout(conns)
	propY := height/2 + pinSpacing

	var b strings.Builder
	fmt.Fprintf(&b, "(kicad_symbol_lib (version %d) (generator %s)\n",
		formatVersion, sexp.Quote(Generator))
	fmt.Fprintf(&b, "  (symbol %s (in_bom yes) (on_board yes)\n", sexp.Quote(name))
	fmt.Fprintf(&b, "    (property \"Reference\" \"U\" (id 0) (at -5.08 %s 0) (effects (font (size 1.27 1.27))))\n",
		sexp.Fixed(propY, 2))
	fmt.Fprintf(&b, "    (property \"Value\" %s (id 1) (at 0 %s 0) (effects (font (size 1.27 1.27))))\n",
		sexp.Quote(name), sexp.Fixed(propY, 2))
	fmt.Fprintf(&b, "    (property \"Footprint\" \"\" (id 2) (at 0 -%s 0) (effects (font (size 1.27 1.27)) (hide yes)))\n",
		sexp.Fixed(propY, 2))

	// Unit 0 carries the body graphics shared by all units.
	fmt.Fprintf(&b, "    (symbol %s\n", sexp.Quote(name+"_0_1"))
	fmt.Fprintf(&b, "      (rectangle (start -%s %s) (end %s -%s) (stroke (width 0.254)) (fill (type background)))\n",
		sexp.Fixed(width/2, 2), sexp.Fixed(height/2, 2),
		sexp.Fixed(width/2, 2), sexp.Fixed(height/2, 2))
	b.WriteString("    )\n")

	fmt.Fprintf(&b, "    (symbol %s\n", sexp.Quote(name+"_1_1"))
	for _, p := range pins {
		fmt.Fprintf(&b, "      (pin passive line (at %s %s %d) (length %s)\n",
			sexp.Fixed(p.x, 2), sexp.Fixed(p.y, 2), p.angle, sexp.Fixed(pinLength, 2))
		fmt.Fprintf(&b, "        (name %s (effects (font (size 1.27 1.27))))\n", sexp.Quote(p.conn.Name))
		fmt.Fprintf(&b, "        (number %s (effects (font (size 1.27 1.27))))\n", sexp.Quote(p.conn.Pin))
		b.WriteString("      )\n")
	}
	b.WriteString("    )\n")
	b.WriteString("  )\n")
	b.WriteString(")\n")

	_, err := io.WriteString(w, b.String())
	return err
}
