package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			_ = cache.Set(ctx, key, key)
			cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, cache.Len())
}

func TestNoopCache(t *testing.T) {
	var cache NoopCache
	require.NoError(t, cache.Set(context.Background(), "k", "v"))
	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestSnapshotRepositoryMemory_Lifecycle(t *testing.T) {
	repo := NewSnapshotRepositoryMemory()
	ctx := context.Background()

	_, err := repo.Load(ctx, "alice")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	original := sampleBackup()
	require.NoError(t, repo.Save(ctx, "alice", original))

	loaded, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, original.Data.Debts, loaded.Data.Debts)

	// modificar la copia no altera lo guardado
	loaded.Data.Debts[0].Balance = 1
	again, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3200.0, again.Data.Debts[0].Balance)

	require.NoError(t, repo.Delete(ctx, "alice"))
	assert.ErrorIs(t, repo.Delete(ctx, "alice"), ErrSnapshotNotFound)
}

func TestSnapshotRepositoryMemory_Corrupt(t *testing.T) {
	repo := NewSnapshotRepositoryMemory()
	repo.SaveRaw("alice", []byte("[broken"))

	_, err := repo.Load(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}
