// Package store persists scan results to disk as JSON, with transparent
// LZ4 frame compression for paths carrying the .lz4 suffix.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/importscout/importscout/internal/report"
)

// CompressedSuffix selects LZ4 compression when a store path ends with it.
const CompressedSuffix = ".lz4"

const storeFileMode = 0o600

// Save writes a result to path. A .lz4 suffix wraps the JSON payload in an
// LZ4 frame; any other suffix stores plain JSON.
func Save(path string, result report.Result) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return fmt.Errorf("create store directory: %w", mkErr)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, storeFileMode)
	if err != nil {
		return fmt.Errorf("create store file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close store file: %w", closeErr)
		}
	}()

	var w io.Writer = f

	if compressed(path) {
		zw := lz4.NewWriter(f)

		defer func() {
			if closeErr := zw.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close lz4 writer: %w", closeErr)
			}
		}()

		w = zw
	}

	if encErr := json.NewEncoder(w).Encode(result); encErr != nil {
		return fmt.Errorf("encode store: %w", encErr)
	}

	return nil
}

// Load reads a result previously written by Save, detecting compression
// from the path suffix.
func Load(path string) (report.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Result{}, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f

	if compressed(path) {
		r = lz4.NewReader(f)
	}

	var result report.Result

	if decErr := json.NewDecoder(r).Decode(&result); decErr != nil {
		return report.Result{}, fmt.Errorf("decode store: %w", decErr)
	}

	return result, nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}
