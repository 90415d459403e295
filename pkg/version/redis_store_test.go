//go:build integration

package version_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/pkg/redis"
	"github.com/dmitrymomot/docsite/pkg/version"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url})
	require.NoError(t, err)

	key := "docsite:test:version:" + t.Name()
	t.Cleanup(func() {
		_ = client.Del(ctx, key).Err()
		_ = client.Close()
	})

	store := version.NewRedisStore(client, key)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, version.ErrNoRecord)

	checked := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, version.Record{Value: "2.0.1", CheckedAt: checked}))

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "2.0.1", rec.Value)
	require.True(t, rec.CheckedAt.Equal(checked))

	s := version.NewSynchronizer(store, version.RemoteFunc(func(context.Context) (string, error) {
		return "2.0.2", nil
	}), version.WithClock(func() time.Time { return checked.Add(2 * time.Hour) }))
	require.Equal(t, "2.0.2", s.Current(ctx))
}
