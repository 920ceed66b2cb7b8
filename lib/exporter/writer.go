package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// BlobWriter persists a finished export artifact.
type BlobWriter interface {
	Write(filename string, data []byte) (path string, err error)
}

// DirWriter writes artifacts into a directory, creating it on demand.
type DirWriter struct {
	Dir string
}

func (w DirWriter) Write(filename string, data []byte) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return path, nil
}
