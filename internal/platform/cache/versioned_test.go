package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Versioned {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVersioned(client, "balances", time.Minute)
}

func TestVersionedFetchJSONCachesLoaderResult(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	key, err := c.BuildKey(ctx, "AC", "digest")
	require.NoError(t, err)
	require.Equal(t, "balances:AC:digest:1", key)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]string{"value": "cash"}, nil
	}

	var first map[string]string
	hit, err := c.FetchJSON(ctx, key, &first, loader)
	require.NoError(t, err)
	require.False(t, hit)

	var second map[string]string
	hit, err = c.FetchJSON(ctx, key, &second, loader)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 1, calls)
	require.Equal(t, "cash", second["value"])
}

func TestVersionedBumpChangesKeys(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	before, err := c.BuildKey(ctx, "AC")
	require.NoError(t, err)
	ver, err := c.Bump(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, ver)
	after, err := c.BuildKey(ctx, "AC")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestVersionedLoaderError(t *testing.T) {
	c := newTestCache(t)
	boom := errors.New("boom")
	var dest []string
	_, err := c.FetchJSON(context.Background(), "k", &dest, func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestVersionedNilClientPassesThrough(t *testing.T) {
	var c *Versioned
	var dest int
	hit, err := c.FetchJSON(context.Background(), "k", &dest, func(context.Context) (any, error) { return 7, nil })
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 7, dest)
}
