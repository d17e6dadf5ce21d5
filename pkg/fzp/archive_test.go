package fzp

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeZip creates a zip file with the given entries in order.
func writeZip(t *testing.T, path string, entries map[string]string, order []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("failed to write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
}

func TestOpenArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.fzpz")
	writeZip(t, path,
		map[string]string{
			"part.fzp":        "<module/>",
			"svg/pcb/pad.svg": "<svg/>",
		},
		[]string{"part.fzp", "svg/pcb/pad.svg"},
	)

	ar, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() unexpected error: %v", err)
	}

	entries := ar.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0] != "part.fzp" || entries[1] != "svg/pcb/pad.svg" {
		t.Errorf("entries = %v, archive order not preserved", entries)
	}

	data, err := ar.Read("svg/pcb/pad.svg")
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Read() = %q, want %q", data, "<svg/>")
	}

	if _, err := ar.Read("missing.svg"); err == nil {
		t.Errorf("Read() of missing entry expected error, got nil")
	}

	descriptor, err := ar.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor() unexpected error: %v", err)
	}
	if string(descriptor) != "<module/>" {
		t.Errorf("Descriptor() = %q, want %q", descriptor, "<module/>")
	}
}

func TestDescriptorMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fzpz")
	writeZip(t, path, map[string]string{"readme.txt": "hi"}, []string{"readme.txt"})

	ar, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() unexpected error: %v", err)
	}
	if _, err := ar.Descriptor(); err == nil {
		t.Errorf("Descriptor() without .fzp entry expected error, got nil")
	}
}

func TestOpenArchiveMissingFile(t *testing.T) {
	if _, err := OpenArchive(filepath.Join(t.TempDir(), "nope.fzpz")); err == nil {
		t.Errorf("OpenArchive() on missing file expected error, got nil")
	}
}
