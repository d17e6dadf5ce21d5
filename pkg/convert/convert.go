// Package convert orchestrates one Fritzing-to-KiCad conversion:
// archive in, footprint and symbol library out.
package convert

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/padstack/fritz2kicad/pkg/kicad/footprint"
	"github.com/padstack/fritz2kicad/pkg/kicad/symbol"
	"github.com/padstack/fritz2kicad/pkg/svg"
)

// InputExt is the expected Fritzing package extension.
const InputExt = ".fzpz"

// outputBaseSanitizer is stricter than descriptor-title sanitizing:
// the name becomes part of library identifiers, where dots are
// unwelcome. It applies to the component name wherever it came from.
var outputBaseSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// Options configures one conversion run.
type Options struct {
	Input      string      // path to the .fzpz package
	OutputBase string      // base path of the two output files
	Logger     *log.Logger // destination for progress and warnings; nil silences
}

// Result summarizes what a conversion produced.
type Result struct {
	Name          string  // component name used in both outputs
	Pins          int     // connector count
	Scale         float64 // calibrated mm per drawing unit
	Calibrated    bool    // false when the fallback scale was used
	FootprintPath string  // "" when footprint emission was skipped
	SymbolPath    string
}

// Run performs a single conversion. A missing or unmatchable PCB
// drawing degrades to symbol-only output; descriptor problems are
// fatal.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	if !strings.HasSuffix(opts.Input, InputExt) {
		return nil, fmt.Errorf("input file must have the %s extension", InputExt)
	}

	ar, err := fzp.OpenArchive(opts.Input)
	if err != nil {
		return nil, err
	}

	descriptor, err := ar.Descriptor()
	if err != nil {
		return nil, err
	}
	part, err := fzp.ParsePart(descriptor)
	if err != nil {
		return nil, err
	}

	name := outputBaseSanitizer.ReplaceAllString(part.Name, "_")
	if opts.OutputBase != "" {
		stem := strings.SplitN(filepath.Base(opts.OutputBase), ".", 2)[0]
		name = outputBaseSanitizer.ReplaceAllString(stem, "_")
	}

	result := &Result{Name: name, Pins: len(part.Connectors)}
	logger.Printf("processing %q (%d pins)", name, len(part.Connectors))

	if path, ok := generateFootprint(opts, ar, part, name, logger, result); ok {
		result.FootprintPath = path
	}

	symPath := opts.OutputBase + ".kicad_sym"
	symFile, err := os.Create(symPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create symbol file: %w", err)
	}
	defer symFile.Close()
	if err := symbol.Emit(symFile, name, part.Connectors); err != nil {
		return nil, fmt.Errorf("failed to write symbol library: %w", err)
	}
	result.SymbolPath = symPath
	logger.Printf("symbol library generated: %s", symPath)

	return result, nil
}

// generateFootprint runs the drawing-dependent half of the pipeline.
// Every failure here is degraded, not fatal: the symbol library can
// still be produced.
func generateFootprint(opts Options, ar *fzp.Archive, part *fzp.Part, name string, logger *log.Logger, result *Result) (string, bool) {
	entry, err := fzp.ResolveDrawing(ar, part.PCBImage)
	if err != nil {
		logger.Printf("warning: PCB drawing not found, skipping footprint")
		return "", false
	}
	drawing, err := ar.Read(entry)
	if err != nil {
		logger.Printf("warning: could not read %s, skipping footprint", entry)
		return "", false
	}

	doc, err := svg.Parse(drawing)
	if err != nil {
		logger.Printf("warning: malformed PCB drawing, skipping footprint: %v", err)
		return "", false
	}

	scale, calibrated := footprint.Calibrate(doc, part.Connectors)
	result.Scale = scale
	result.Calibrated = calibrated
	if calibrated {
		logger.Printf("auto-calibration: %.2f drawing units = %.2f mm (factor %.6f)",
			footprint.GridPitch/scale, footprint.GridPitch, scale)
	} else {
		logger.Printf("warning: too few pins to auto-calibrate, using fallback %.4f", footprint.FallbackScale)
	}

	pads, envelope := footprint.Extract(doc, part.Connectors, scale)
	if len(pads) == 0 || envelope.IsEmpty() {
		logger.Printf("warning: no pads matched the drawing, skipping footprint")
		return "", false
	}

	modPath := opts.OutputBase + ".kicad_mod"
	modFile, err := os.Create(modPath)
	if err != nil {
		logger.Printf("warning: failed to create footprint file: %v", err)
		return "", false
	}
	defer modFile.Close()
	if err := footprint.Emit(modFile, name, pads, envelope); err != nil {
		logger.Printf("warning: failed to write footprint: %v", err)
		return "", false
	}

	logger.Printf("footprint generated: %s (%d pads)", modPath, len(pads))
	return modPath, true
}
