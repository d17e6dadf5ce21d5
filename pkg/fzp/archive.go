// Package fzp reads Fritzing part packages (.fzpz archives) and their
// XML part descriptors (.fzp files).
package fzp

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/mholt/archiver"
)

// Archive is an in-memory view of a .fzpz zip container.
// Entries keep the archive's native ordering, which the drawing
// resolution fallbacks depend on.
type Archive struct {
	names []string
	data  map[string][]byte
}

// OpenArchive reads every entry of the zip at path into memory.
// A single conversion touches most entries anyway, and Fritzing
// packages are small.
func OpenArchive(path string) (*Archive, error) {
	ar := &Archive{data: make(map[string][]byte)}

	z := archiver.NewZip()
	err := z.Walk(path, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}

		var name string
		switch h := f.Header.(type) {
		case zip.FileHeader:
			name = h.Name
		case *zip.FileHeader:
			name = h.Name
		default:
			name = f.Name()
		}

		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("failed to read entry %q: %w", name, err)
		}

		ar.names = append(ar.names, name)
		ar.data[name] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", path, err)
	}

	return ar, nil
}

// Entries returns all entry paths in archive order.
func (ar *Archive) Entries() []string {
	return ar.names
}

// Read returns the bytes of the named entry.
func (ar *Archive) Read(name string) ([]byte, error) {
	data, ok := ar.data[name]
	if !ok {
		return nil, fmt.Errorf("entry %q not found in archive", name)
	}
	return data, nil
}

// FindSuffix returns the first entry whose path ends with suffix,
// in archive order.
func (ar *Archive) FindSuffix(suffix string) (string, bool) {
	for _, name := range ar.names {
		if strings.HasSuffix(name, suffix) {
			return name, true
		}
	}
	return "", false
}

// Descriptor returns the bytes of the first .fzp entry.
// Every valid Fritzing package carries exactly one.
func (ar *Archive) Descriptor() ([]byte, error) {
	name, ok := ar.FindSuffix(".fzp")
	if !ok {
		return nil, fmt.Errorf("no .fzp descriptor entry in archive")
	}
	return ar.Read(name)
}
