package fzp

import (
	"errors"
	"path"
	"strings"
)

// ErrNoDrawing is returned when no PCB drawing entry can be located.
var ErrNoDrawing = errors.New("no PCB drawing found in archive")

// drawingExt is the file extension of Fritzing view drawings.
const drawingExt = ".svg"

// ResolveDrawing locates the PCB drawing entry for the given image
// hint. Fritzing packages are loosely specified and descriptor paths
// frequently disagree with the archive's actual layout, so resolution
// runs a sequence of strategies and takes the first hit.
func ResolveDrawing(ar *Archive, hint string) (string, error) {
	strategies := []func(*Archive, string) (string, bool){
		resolveEmptyHint,
		resolveBySuffix,
		resolveAnyPCB,
	}
	for _, strategy := range strategies {
		if entry, ok := strategy(ar, hint); ok {
			return entry, nil
		}
	}
	return "", ErrNoDrawing
}

// resolveEmptyHint handles descriptors without a PCB image path: any
// SVG entry mentioning "pcb" will do.
func resolveEmptyHint(ar *Archive, hint string) (string, bool) {
	if hint != "" {
		return "", false
	}
	return firstPCBDrawing(ar)
}

// resolveBySuffix matches entries against the hint's base filename.
// When both the hint and a candidate mention "pcb", candidates that
// also mention "schematic" are deprioritized; Fritzing exports often
// carry a schematic variant with a confusingly similar name.
func resolveBySuffix(ar *Archive, hint string) (string, bool) {
	if hint == "" {
		return "", false
	}
	target := path.Base(strings.ReplaceAll(hint, "\\", "/"))

	var candidates []string
	for _, name := range ar.Entries() {
		if strings.HasSuffix(name, target) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) > 1 && strings.Contains(strings.ToLower(target), "pcb") {
		for _, name := range candidates {
			lower := strings.ToLower(name)
			if strings.Contains(lower, "pcb") && !strings.Contains(lower, "schematic") {
				return name, true
			}
		}
	}

	if len(candidates) > 0 {
		return candidates[0], true
	}
	return "", false
}

// resolveAnyPCB is the last resort when the hinted filename does not
// exist at all: fall back to any PCB drawing in the archive.
func resolveAnyPCB(ar *Archive, hint string) (string, bool) {
	if hint == "" {
		return "", false
	}
	return firstPCBDrawing(ar)
}

func firstPCBDrawing(ar *Archive) (string, bool) {
	for _, name := range ar.Entries() {
		if strings.HasSuffix(name, drawingExt) && strings.Contains(strings.ToLower(name), "pcb") {
			return name, true
		}
	}
	return "", false
}
