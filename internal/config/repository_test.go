package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workclock/internal/storage"
)

func TestCreateStore_SQLite(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("WC_DB_DIR", tmpDir)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	store, err := CreateStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "settings_u1", []byte(`{}`)))
	records, err := store.GetByPrefix(ctx, "settings_")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.FileExists(t, filepath.Join(tmpDir, "workclock.db"))
}

func TestCreateStore_Memory(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendMemory

	store, err := CreateStore(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := store.(*storage.MemoryStore)
	assert.True(t, ok)
}

func TestCreateStore_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = "etcd"

	_, err := CreateStore(context.Background(), cfg)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "storage.backend", configErr.Field)
}

func TestCreateTestStore(t *testing.T) {
	store, err := CreateTestStore()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
	got, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
