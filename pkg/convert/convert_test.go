package convert

import (
	"archive/zip"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
)

const testDescriptor = `<?xml version="1.0" encoding="UTF-8"?>
<module moduleId="test">
  <title>Two Pin Header</title>
  <views>
    <pcbView>
      <layers image="pcb/header_pcb.svg">
        <layer layerId="copper0"/>
      </layers>
    </pcbView>
  </views>
  <connectors>
    <connector id="connector0" name="P1">
      <views>
        <pcbView>
          <p layer="copper0" svgId="pad0"/>
          <p layer="copper1" svgId="pad0"/>
        </pcbView>
      </views>
    </connector>
    <connector id="connector1" name="P2">
      <views>
        <pcbView>
          <p layer="copper0" svgId="pad1"/>
          <p layer="copper1" svgId="pad1"/>
        </pcbView>
      </views>
    </connector>
  </connectors>
</module>`

const testDrawing = `<svg xmlns="http://www.w3.org/2000/svg">
  <g id="copper1">
    <circle id="pad0" cx="10" cy="10" r="2"/>
    <circle id="pad1" cx="10" cy="20" r="2"/>
  </g>
</svg>`

// writePackage builds a .fzpz in dir and returns its path.
func writePackage(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "part.fzpz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating package: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing package: %v", err)
	}
	return path
}

func parseFile(t *testing.T, path string) *sexp.List {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	nodes, err := sexp.Parse(f)
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	if len(nodes) != 1 {
		t.Fatalf("%s: got %d top-level expressions, want 1", path, len(nodes))
	}
	return nodes[0].(*sexp.List)
}

func TestRunFullConversion(t *testing.T) {
	dir := t.TempDir()
	input := writePackage(t, dir, map[string]string{
		"part.fzp":           testDescriptor,
		"svg/header_pcb.svg": testDrawing,
	})

	result, err := Run(Options{
		Input:      input,
		OutputBase: filepath.Join(dir, "header"),
		Logger:     log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if result.Name != "header" {
		t.Errorf("Name = %q, want header (from output base)", result.Name)
	}
	if result.Pins != 2 {
		t.Errorf("Pins = %d, want 2", result.Pins)
	}
	if !result.Calibrated {
		t.Errorf("expected successful calibration")
	}
	if math.Abs(result.Scale-0.254) > 1e-12 {
		t.Errorf("Scale = %v, want 0.254 (10 units per grid step)", result.Scale)
	}
	if result.FootprintPath == "" || result.SymbolPath == "" {
		t.Fatalf("missing output paths: %+v", result)
	}

	mod := parseFile(t, result.FootprintPath)
	if mod.Key() != "footprint" {
		t.Errorf("footprint root = %q, want footprint", mod.Key())
	}
	if pads := sexp.FindAll(mod, "pad"); len(pads) != 2 {
		t.Errorf("footprint has %d pads, want 2", len(pads))
	}

	lib := parseFile(t, result.SymbolPath)
	if lib.Key() != "kicad_symbol_lib" {
		t.Errorf("symbol root = %q, want kicad_symbol_lib", lib.Key())
	}
	if pins := sexp.FindAllDeep(lib, "pin"); len(pins) != 2 {
		t.Errorf("symbol has %d pins, want 2", len(pins))
	}
}

func TestRunWithoutDrawingDegradesToSymbol(t *testing.T) {
	dir := t.TempDir()
	input := writePackage(t, dir, map[string]string{
		"part.fzp": testDescriptor,
	})

	result, err := Run(Options{
		Input:      input,
		OutputBase: filepath.Join(dir, "out"),
		Logger:     log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.FootprintPath != "" {
		t.Errorf("FootprintPath = %q, want empty without a drawing", result.FootprintPath)
	}
	if result.SymbolPath == "" {
		t.Fatalf("symbol output must survive a missing drawing")
	}
	if _, err := os.Stat(result.SymbolPath); err != nil {
		t.Errorf("symbol file missing: %v", err)
	}
}

func TestRunSanitizesOutputBaseName(t *testing.T) {
	dir := t.TempDir()
	input := writePackage(t, dir, map[string]string{
		"part.fzp": testDescriptor,
	})

	result, err := Run(Options{
		Input:      input,
		OutputBase: filepath.Join(dir, "my part!"),
		Logger:     log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.Name != "my_part_" {
		t.Errorf("Name = %q, want my_part_", result.Name)
	}
}

func TestRunTitleNameSanitized(t *testing.T) {
	// Without an output base the component name comes from the
	// descriptor title, which must still pass the strict identifier
	// sanitizer: dots become underscores.
	dir := t.TempDir()
	descriptor := strings.Replace(testDescriptor, "Two Pin Header", "Header v1.2", 1)
	input := writePackage(t, dir, map[string]string{
		"part.fzp": descriptor,
	})

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("entering temp dir: %v", err)
	}
	defer os.Chdir(wd)

	result, err := Run(Options{
		Input:  input,
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.Name != "Header_v1_2" {
		t.Errorf("Name = %q, want Header_v1_2", result.Name)
	}
}

func TestRunRejectsWrongExtension(t *testing.T) {
	if _, err := Run(Options{Input: "part.zip", Logger: log.New(io.Discard, "", 0)}); err == nil {
		t.Errorf("Run() with wrong extension expected error, got nil")
	}
}

func TestRunMissingInput(t *testing.T) {
	if _, err := Run(Options{
		Input:  filepath.Join(t.TempDir(), "absent.fzpz"),
		Logger: log.New(io.Discard, "", 0),
	}); err == nil {
		t.Errorf("Run() on a missing package expected error, got nil")
	}
}

func TestRunRejectsMissingDescriptor(t *testing.T) {
	dir := t.TempDir()
	input := writePackage(t, dir, map[string]string{
		"readme.txt": "not a part",
	})

	if _, err := Run(Options{
		Input:      input,
		OutputBase: filepath.Join(dir, "out"),
		Logger:     log.New(io.Discard, "", 0),
	}); err == nil {
		t.Errorf("Run() without a descriptor expected error, got nil")
	}
}
