// Package footprint derives KiCad footprint pad geometry from a
// Fritzing PCB drawing and emits it as a .kicad_mod file.
package footprint

import (
	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
)

// PadType distinguishes mounting styles.
type PadType string

const (
	TypeThruHole PadType = "thru_hole"
	TypeSMD      PadType = "smd"
)

// PadShape is the drawn pad outline.
type PadShape string

const (
	ShapeCircle PadShape = "circle"
	ShapeRect   PadShape = "rect"
	ShapeCustom PadShape = "custom"
)

// Layer sets per mounting style. Through-hole pads span both copper
// sides; surface-mount pads get front copper, mask and paste.
var (
	thruHoleLayers = sexp.LayerSet{"*.Cu", "*.Mask"}
	smdLayers      = sexp.LayerSet{"F.Cu", "F.Mask", "F.Paste"}
)

// Pad is one copper pad, fully calibrated to millimeters.
type Pad struct {
	Number  string          // pin designator
	Type    PadType         // mounting style
	Shape   PadShape        // drawn outline class
	Center  sexp.Position   // pad center
	Size    sexp.Size       // pad extent
	Drill   float64         // drill diameter, 0 for SMD
	Layers  sexp.LayerSet   // board layers
	Outline []sexp.Position // boundary samples, custom shapes only
}
