// Package backup serializes the entire data set to a portable snapshot
// and reconstitutes it with a configurable conflict policy.
package backup

import (
	"encoding/json"
	"time"
)

// FormatVersion identifies the snapshot layout this build produces.
const FormatVersion = "1.0"

// Snapshot is the exported representation of the whole store: one
// record array per known collection plus export metadata. It is built
// on demand and never persisted as live state.
type Snapshot struct {
	Version   string                       `json:"version"`
	Timestamp time.Time                    `json:"timestamp"`
	Data      map[string][]json.RawMessage `json:"data"`
	Metadata  Metadata                     `json:"metadata"`
}

// Metadata describes the export itself.
type Metadata struct {
	TotalRecords       int       `json:"totalRecords"`
	ExportedBy         string    `json:"exportedBy"`
	ExportedAt         time.Time `json:"exportedAt"`
	ApplicationVersion string    `json:"applicationVersion"`
}

// validate checks the structural shape required before an import.
func (s *Snapshot) validate() bool {
	return s != nil && s.Version != "" && !s.Timestamp.IsZero() && s.Data != nil
}

// ImportOptions controls conflict and failure handling during import.
type ImportOptions struct {
	// OverwriteExisting replaces records whose key already exists;
	// otherwise they are counted as skipped.
	OverwriteExisting bool `json:"overwriteExisting"`

	// SkipInvalidRecords records per-record failures and continues;
	// otherwise the first failure aborts the import with prior writes
	// left in place.
	SkipInvalidRecords bool `json:"skipInvalidRecords"`
}

// ImportResult reports the outcome of one import pass.
type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Stats reports per-collection record counts without payloads.
type Stats struct {
	TotalRecords int            `json:"totalRecords"`
	DataTypes    map[string]int `json:"dataTypes"`
	LastBackup   *time.Time     `json:"lastBackup,omitempty"`
}
