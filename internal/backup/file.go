package backup

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"kontora/internal/core/apperror"
)

// WriteFile marshals the snapshot to path. Paths ending in .zst are
// zstd-compressed, anything else is plain JSON.
func WriteFile(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return apperror.NewStorage("create backup file", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return apperror.NewStorage("write backup file", err)
		}
		return nil
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return apperror.NewStorage("open compressed writer", err)
	}
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return apperror.NewStorage("write backup file", err)
	}
	return zw.Close()
}

// ReadFile reads a snapshot written by WriteFile, transparently
// decompressing .zst paths. A structurally invalid document fails with
// INVALID_FORMAT.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.NewStorage("open backup file", err)
	}
	defer f.Close()

	var snap Snapshot
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, apperror.NewStorage("open compressed reader", err)
		}
		defer zr.Close()
		if err := json.NewDecoder(zr).Decode(&snap); err != nil {
			return nil, apperror.NewInvalidFormat("backup file is not a valid snapshot").WithCause(err)
		}
	} else {
		if err := json.NewDecoder(f).Decode(&snap); err != nil {
			return nil, apperror.NewInvalidFormat("backup file is not a valid snapshot").WithCause(err)
		}
	}

	if !snap.validate() {
		return nil, apperror.NewInvalidFormat("backup file is missing version, timestamp or data")
	}
	return &snap, nil
}
