// internal/vkzip/open.go
package vkzip

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"
)

// OpenArchive opens an export file, insisting on the .zip extension so a
// stray path error surfaces before any decoding starts.
func OpenArchive(path string) (*zip.ReadCloser, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return nil, fmt.Errorf("%s is not a ZIP file", path)
	}
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return rc, nil
}
