package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rustaman1280/tefacontoh/internal/cache"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int64             `json:"total"`
	Names map[string]string `json:"names"`
}

func TestStore(t *testing.T) {
	url := testutil.StartRedis(t)
	ctx := context.Background()

	store, err := cache.NewStore(ctx, url, "test:", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(ctx))

	var got payload
	hit, err := store.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := payload{Total: 7, Names: map[string]string{"TKJ": "Teknik Komputer dan Jaringan"}}
	require.NoError(t, store.Set(ctx, "stats", want))

	hit, err = store.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete(ctx, "stats", "missing"))
	hit, err = store.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Delete(ctx))
}

func TestNewStoreErrors(t *testing.T) {
	_, err := cache.NewStore(context.Background(), "not a url", "", time.Minute)
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err = cache.NewStore(ctx, "redis://127.0.0.1:1/0", "", time.Minute)
	assert.Error(t, err)
}
