package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/catalogs/contracttemplate"
	"kontora/internal/domain/catalogs/product"
	"kontora/internal/domain/catalogs/supplier"
	"kontora/internal/domain/catalogs/user"
	"kontora/internal/domain/catalogs/usergroup"
	"kontora/internal/domain/documents/bill"
	"kontora/internal/domain/documents/contract"
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/domain/documents/payment"
	"kontora/internal/domain/documents/purchaseorder"
	"kontora/internal/domain/documents/subscription"
	"kontora/internal/domain/documents/supplierpayment"
	"kontora/internal/domain/documents/transaction"
	"kontora/internal/domain/registers/notification"
	"kontora/internal/domain/registers/suppliermetrics"
	"kontora/internal/domain/registers/usagemetrics"
	"kontora/internal/storage/kv"
	"kontora/pkg/logger"
)

// Collections lists every collection prefix a snapshot covers. Order
// fixes the export's collection iteration.
var Collections = []string{
	client.CollectionPrefix,
	supplier.CollectionPrefix,
	product.CollectionPrefix,
	user.CollectionPrefix,
	usergroup.CollectionPrefix,
	contracttemplate.CollectionPrefix,
	bill.CollectionPrefix,
	invoice.CollectionPrefix,
	transaction.CollectionPrefix,
	contract.CollectionPrefix,
	payment.CollectionPrefix,
	purchaseorder.CollectionPrefix,
	supplierpayment.CollectionPrefix,
	subscription.CollectionPrefix,
	usagemetrics.CollectionPrefix,
	suppliermetrics.CollectionPrefix,
	notification.CollectionPrefix,
}

// Service exports and imports full-store snapshots. Stateless between
// calls apart from the last successful export time, which is held in
// process memory only.
type Service struct {
	store kv.Store

	exportedBy string
	appVersion string
	now        func() time.Time

	mu         sync.Mutex
	lastBackup *time.Time
}

// Config configures the backup service.
type Config struct {
	Store      kv.Store
	ExportedBy string
	AppVersion string

	// Now defaults to time.Now; injectable for deterministic tests.
	Now func() time.Time
}

// NewService creates a new backup service.
func NewService(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      cfg.Store,
		exportedBy: cfg.ExportedBy,
		appVersion: cfg.AppVersion,
		now:        now,
	}
}

// Export scans every known collection and assembles a snapshot. Empty
// collections yield empty arrays, never an error.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Version:   FormatVersion,
		Timestamp: s.now(),
		Data:      make(map[string][]json.RawMessage, len(Collections)),
	}

	total := 0
	for _, collection := range Collections {
		records, err := s.store.List(ctx, collection)
		if err != nil {
			return nil, apperror.NewStorage("export "+collection, err)
		}
		if records == nil {
			records = []json.RawMessage{}
		}
		snap.Data[collection] = records
		total += len(records)
	}

	snap.Metadata = Metadata{
		TotalRecords:       total,
		ExportedBy:         s.exportedBy,
		ExportedAt:         snap.Timestamp,
		ApplicationVersion: s.appVersion,
	}

	s.mu.Lock()
	t := snap.Timestamp
	s.lastBackup = &t
	s.mu.Unlock()

	logger.Info(ctx, "backup exported", "totalRecords", total)
	return snap, nil
}

// Import writes every record of the snapshot into the store under the
// configured conflict policy. Not atomic: an abort leaves earlier
// writes in place.
func (s *Service) Import(ctx context.Context, snap *Snapshot, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	if !snap.validate() {
		return result, apperror.NewInvalidFormat("snapshot is missing version, timestamp or data")
	}

	for collection, records := range snap.Data {
		for _, raw := range records {
			if err := s.importRecord(ctx, collection, raw, opts, result); err != nil {
				return result, err
			}
		}
	}

	result.Success = true
	logger.Info(ctx, "backup imported",
		"imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

func (s *Service) importRecord(ctx context.Context, collection string, raw json.RawMessage, opts ImportOptions, result *ImportResult) error {
	recordID, err := recordID(raw)
	if err != nil {
		return s.recordFailure(collection, "?", err, opts, result)
	}

	key := kv.Key(collection, recordID)

	existing, err := s.store.Get(ctx, key)
	if err != nil {
		return s.recordFailure(collection, recordID, err, opts, result)
	}
	if existing != nil && !opts.OverwriteExisting {
		result.Skipped++
		return nil
	}

	if err := s.store.Set(ctx, key, raw); err != nil {
		return s.recordFailure(collection, recordID, err, opts, result)
	}
	result.Imported++
	return nil
}

// recordFailure applies the per-record failure policy: count and
// continue when skipping is allowed, abort otherwise.
func (s *Service) recordFailure(collection, recordID string, err error, opts ImportOptions, result *ImportResult) error {
	if opts.SkipInvalidRecords {
		result.Skipped++
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s/%s: %v", collection, recordID, err))
		return nil
	}
	return apperror.NewStorage(fmt.Sprintf("import %s/%s", collection, recordID), err)
}

func recordID(raw json.RawMessage) (string, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", err
	}
	if probe.ID == "" {
		return "", fmt.Errorf("record has no id")
	}
	return probe.ID, nil
}

// Stats counts records per collection without loading payloads into a
// snapshot. LastBackup reflects exports made by this process only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{DataTypes: make(map[string]int, len(Collections))}

	for _, collection := range Collections {
		records, err := s.store.List(ctx, collection)
		if err != nil {
			return nil, apperror.NewStorage("count "+collection, err)
		}
		stats.DataTypes[collection] = len(records)
		stats.TotalRecords += len(records)
	}

	s.mu.Lock()
	stats.LastBackup = s.lastBackup
	s.mu.Unlock()

	return stats, nil
}
