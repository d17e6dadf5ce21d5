package footprint

import (
	"math"
	"sort"

	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/padstack/fritz2kicad/pkg/svg"
)

// Calibration protocol constants. The noise threshold and rounding
// granularity directly determine which spacing wins the mode vote;
// they are part of the calibration contract, not tuning knobs.
const (
	// FallbackScale assumes 1 drawing unit = 1 mil when too few pins
	// match for auto-calibration.
	FallbackScale = 0.0254

	// GridPitch is the 0.1 inch pin grid the modal spacing is assumed
	// to represent.
	GridPitch = 2.54

	// noiseThreshold discards same-row center differences.
	noiseThreshold = 0.1
)

// Calibrate infers the millimeters-per-drawing-unit factor from the
// vertical spacing of connector-matched shapes. The second return is
// false when the fallback scale had to be used.
//
// The result is a pure function of the drawing and connector table.
func Calibrate(doc *svg.Document, conns []fzp.Connector) (float64, bool) {
	matched := make(map[string]bool, len(conns))
	for _, c := range conns {
		if c.SVGID != "" {
			matched[c.SVGID] = true
		}
	}

	var centers []float64
	doc.Walk(func(node *svg.Node) {
		if !matched[node.EffectiveID] {
			return
		}
		if box, ok := node.BBox(); ok {
			centers = append(centers, box.CenterY())
		}
	})

	if len(centers) < 2 {
		return FallbackScale, false
	}

	sort.Float64s(centers)
	var deltas []float64
	for i := 1; i < len(centers); i++ {
		if d := centers[i] - centers[i-1]; d > noiseThreshold {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return FallbackScale, false
	}

	pitch := modeOf(deltas)
	if pitch <= 0 {
		return FallbackScale, false
	}
	return GridPitch / pitch, true
}

// modeOf rounds each delta to one decimal and returns the most
// frequent value; ties go to the value seen first.
func modeOf(deltas []float64) float64 {
	counts := make(map[float64]int, len(deltas))
	var best float64
	bestCount := 0
	for _, d := range deltas {
		rounded := math.Round(d*10) / 10
		counts[rounded]++
		if counts[rounded] > bestCount {
			best = rounded
			bestCount = counts[rounded]
		}
	}
	return best
}
