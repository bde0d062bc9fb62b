package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/backup"
	"kontora/internal/core/apperror"
	"kontora/internal/core/id"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/relations"
	"kontora/internal/storage/kv"
)

func newBackupService(store kv.Store) *backup.Service {
	return backup.NewService(backup.Config{
		Store:      store,
		ExportedBy: "test",
		AppVersion: "0.0.0-test",
	})
}

func seedClients(t *testing.T, store kv.Store, names ...string) *client.Service {
	t.Helper()
	clients := client.NewService(store, relations.NewManager(store), domain.Options{IDs: &id.Sequence{Prefix: "client"}})
	for _, name := range names {
		require.NoError(t, clients.Create(context.Background(), client.New(name, client.StatusActive)))
	}
	return clients
}

func TestExportCoversAllCollections(t *testing.T) {
	store := kv.NewMemory()
	seedClients(t, store, "a", "b")

	snap, err := newBackupService(store).Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, backup.FormatVersion, snap.Version)
	assert.Equal(t, 2, snap.Metadata.TotalRecords)
	assert.Equal(t, "test", snap.Metadata.ExportedBy)
	assert.Len(t, snap.Data, len(backup.Collections), "empty collections export as empty arrays")
	assert.Len(t, snap.Data[client.CollectionPrefix], 2)
	assert.Empty(t, snap.Data["bills"])
}

func TestRoundTripIsIdempotent(t *testing.T) {
	store := kv.NewMemory()
	clients := seedClients(t, store, "a", "b", "c")
	ctx := context.Background()

	before, err := clients.All(ctx)
	require.NoError(t, err)

	svc := newBackupService(store)
	snap, err := svc.Export(ctx)
	require.NoError(t, err)

	result, err := svc.Import(ctx, snap, backup.ImportOptions{OverwriteExisting: true})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, snap.Metadata.TotalRecords, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	after, err := clients.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportSkipsExistingWithoutOverwrite(t *testing.T) {
	store := kv.NewMemory()
	clients := seedClients(t, store, "original")
	ctx := context.Background()

	svc := newBackupService(store)
	snap, err := svc.Export(ctx)
	require.NoError(t, err)

	// Rename inside the snapshot; without overwrite the store keeps the
	// original record.
	raw := snap.Data[client.CollectionPrefix][0]
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	fields["name"] = "tampered"
	tampered, err := json.Marshal(fields)
	require.NoError(t, err)
	snap.Data[client.CollectionPrefix][0] = tampered

	result, err := svc.Import(ctx, snap, backup.ImportOptions{OverwriteExisting: false})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	stored, err := clients.Get(ctx, fields["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Name)
}

func TestImportIntoEmptyStore(t *testing.T) {
	source := kv.NewMemory()
	seedClients(t, source, "a", "b")

	snap, err := newBackupService(source).Export(context.Background())
	require.NoError(t, err)

	target := kv.NewMemory()
	result, err := newBackupService(target).Import(context.Background(), snap, backup.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	values, err := target.List(context.Background(), client.CollectionPrefix)
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestImportRejectsMalformedSnapshot(t *testing.T) {
	svc := newBackupService(kv.NewMemory())

	_, err := svc.Import(context.Background(), &backup.Snapshot{Version: "1.0"}, backup.ImportOptions{})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidFormat(err))
}

func TestImportSkipInvalidRecordsPolicy(t *testing.T) {
	svc := newBackupService(kv.NewMemory())
	ctx := context.Background()

	snap := &backup.Snapshot{
		Version:   backup.FormatVersion,
		Timestamp: time.Now(),
		Data: map[string][]json.RawMessage{
			"clients": {
				json.RawMessage(`{"name":"no id at all"}`),
				json.RawMessage(`{"id":"client-1","name":"good"}`),
			},
		},
	}

	result, err := svc.Import(ctx, snap, backup.ImportOptions{SkipInvalidRecords: true})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 1)

	// Without the skip policy the same snapshot aborts.
	result, err = svc.Import(ctx, snap, backup.ImportOptions{OverwriteExisting: true})
	require.Error(t, err)
	assert.False(t, result.Success)
}

func TestStatsCountsWithoutPayloads(t *testing.T) {
	store := kv.NewMemory()
	seedClients(t, store, "a", "b")
	svc := newBackupService(store)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 2, stats.DataTypes[client.CollectionPrefix])
	assert.Nil(t, stats.LastBackup, "no export has happened yet")

	_, err = svc.Export(ctx)
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stats.LastBackup)
}
