package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ducroq/sanderveen.art/internal/models"
)

// ErrManifestMissing signals that no manifest exists yet. Downstream
// stages treat this as a fatal precondition and tell the operator to
// run the crawl first.
var ErrManifestMissing = errors.New("manifest not found")

// Write serializes paintings to path, sorted by id descending. The
// file is written whole on every run; it is never merged with a prior
// version. Non-ASCII characters are preserved literally so the
// manifest stays human-readable.
func Write(path string, paintings []models.Painting) error {
	models.SortByID(paintings)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(paintings); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest dir: %w", err)
		}
	}

	// Write to temp file first for atomicity
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("finalize manifest: %w", err)
	}

	return nil
}

// Read loads a previously written manifest.
func Read(path string) ([]models.Painting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var paintings []models.Painting
	if err := json.Unmarshal(data, &paintings); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return paintings, nil
}
