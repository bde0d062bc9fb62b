package backup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/backup"
	"kontora/internal/core/apperror"
	"kontora/internal/storage/kv"
)

func TestFileRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	seedClients(t, store, "a", "b")
	ctx := context.Background()

	snap, err := newBackupService(store).Export(ctx)
	require.NoError(t, err)

	for _, name := range []string{"backup.json", "backup.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, backup.WriteFile(path, snap))

			loaded, err := backup.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, snap.Version, loaded.Version)
			assert.Equal(t, snap.Metadata.TotalRecords, loaded.Metadata.TotalRecords)
			assert.Len(t, loaded.Data["clients"], 2)
		})
	}
}

func TestReadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := backup.ReadFile(path)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidFormat(err))
}

func TestReadFileRejectsIncompleteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0"}`), 0o600))

	_, err := backup.ReadFile(path)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidFormat(err))
}
