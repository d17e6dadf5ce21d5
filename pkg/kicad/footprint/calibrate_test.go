package footprint

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/padstack/fritz2kicad/pkg/svg"
)

// drawingWithPads builds an SVG with one 2-unit circle per y position,
// with ids pad0, pad1, ...
func drawingWithPads(t *testing.T, ys ...float64) *svg.Document {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("<svg>")
	for i, y := range ys {
		fmt.Fprintf(&sb, `<circle id="pad%d" cx="10" cy="%g" r="1"/>`, i, y)
	}
	sb.WriteString("</svg>")

	doc, err := svg.Parse([]byte(sb.String()))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return doc
}

func connsForPads(count int) []fzp.Connector {
	conns := make([]fzp.Connector, count)
	for i := range conns {
		conns[i] = fzp.Connector{
			ID:    fmt.Sprintf("connector%d", i),
			Pin:   fmt.Sprintf("%d", i+1),
			SVGID: fmt.Sprintf("pad%d", i),
		}
	}
	return conns
}

func TestCalibrateTwoPinPitch(t *testing.T) {
	// Two matched shapes 10 drawing units apart: the pitch mode is
	// 10.0 and one grid step of 2.54 mm maps to it.
	doc := drawingWithPads(t, 10, 20)
	scale, calibrated := Calibrate(doc, connsForPads(2))

	if !calibrated {
		t.Fatalf("expected successful calibration")
	}
	if math.Abs(scale-0.254) > 1e-12 {
		t.Errorf("scale = %v, want 0.254", scale)
	}
}

func TestCalibrateFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		doc   func(t *testing.T) *svg.Document
		conns []fzp.Connector
	}{
		{
			name:  "no matched shapes",
			doc:   func(t *testing.T) *svg.Document { return drawingWithPads(t, 10, 20) },
			conns: []fzp.Connector{{ID: "c0", SVGID: "elsewhere"}},
		},
		{
			name:  "single matched shape",
			doc:   func(t *testing.T) *svg.Document { return drawingWithPads(t, 10) },
			conns: connsForPads(1),
		},
		{
			name:  "no connectors mapped at all",
			doc:   func(t *testing.T) *svg.Document { return drawingWithPads(t, 10, 20) },
			conns: []fzp.Connector{{ID: "c0"}, {ID: "c1"}},
		},
		{
			name: "all differences below noise threshold",
			doc:  func(t *testing.T) *svg.Document { return drawingWithPads(t, 10, 10.05) },
			conns: connsForPads(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, calibrated := Calibrate(tt.doc(t), tt.conns)
			if calibrated {
				t.Errorf("expected fallback calibration")
			}
			if scale != FallbackScale {
				t.Errorf("scale = %v, want fallback %v", scale, FallbackScale)
			}
		})
	}
}

func TestCalibrateModeSelection(t *testing.T) {
	// Rows at a regular 10-unit pitch plus one 30-unit outlier gap;
	// the mode must pick 10.
	doc := drawingWithPads(t, 0, 10, 20, 30, 60)
	scale, calibrated := Calibrate(doc, connsForPads(5))

	if !calibrated {
		t.Fatalf("expected successful calibration")
	}
	if math.Abs(scale-0.254) > 1e-12 {
		t.Errorf("scale = %v, want 0.254 (mode pitch 10)", scale)
	}
}

func TestCalibrateNoiseFiltering(t *testing.T) {
	// Two shapes on the same row (0.05 apart) must not poison the
	// pitch with a near-zero difference.
	doc := drawingWithPads(t, 10, 10.05, 20, 30)
	scale, calibrated := Calibrate(doc, connsForPads(4))

	if !calibrated {
		t.Fatalf("expected successful calibration")
	}
	if math.Abs(scale-0.254) > 1e-9 {
		t.Errorf("scale = %v, want 0.254", scale)
	}
}

func TestCalibrateDeterminism(t *testing.T) {
	doc := drawingWithPads(t, 5, 15, 25)
	conns := connsForPads(3)

	first, _ := Calibrate(doc, conns)
	for i := 0; i < 10; i++ {
		if again, _ := Calibrate(doc, conns); again != first {
			t.Fatalf("Calibrate() not deterministic: %v then %v", first, again)
		}
	}
}

func TestModeOfTieBreak(t *testing.T) {
	// Equal counts: the value seen first wins.
	if got := modeOf([]float64{10.0, 12.0, 10.0, 12.0}); got != 10.0 {
		t.Errorf("modeOf tie = %v, want 10.0 (first seen)", got)
	}
}
