package store_test

import (
	"context"
	"testing"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *store.Redis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return store.NewRedis(client, "flowext:")
}

func TestRedisPutAndQuery(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	require.NoError(t, rs.Put(ctx, welcomeRecord()))

	recs, err := rs.Query(ctx, "welcome")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Equal(welcomeRecord()))
}

func TestRedisPutReplaces(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	require.NoError(t, rs.Put(ctx, welcomeRecord()))

	updated := welcomeRecord()
	updated.Fields["flow"] = "send-welcome-v2"
	require.NoError(t, rs.Put(ctx, updated))

	recs, err := rs.Query(ctx, "welcome")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	val, _ := recs[0].Field("flow")
	assert.Equal(t, "send-welcome-v2", val)
}

func TestRedisPutInvalid(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	err := rs.Put(ctx, &api.ConfigRecord{})
	assert.ErrorIs(t, err, api.ErrRecordNameEmpty)
}

func TestRedisQueryEmpty(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	recs, err := rs.Query(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRedisDelete(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	require.NoError(t, rs.Put(ctx, welcomeRecord()))
	require.NoError(t, rs.Delete(ctx, "welcome"))

	recs, err := rs.Query(ctx, "welcome")
	require.NoError(t, err)
	assert.Empty(t, recs)

	assert.ErrorIs(t, rs.Delete(ctx, "welcome"), store.ErrRecordNotFound)
}

func TestRedisList(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	require.NoError(t, rs.Put(ctx, welcomeRecord()))
	require.NoError(t, rs.Put(ctx, goodbyeRecord()))

	recs, err := rs.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, api.Name("goodbye"), recs[0].Name)
	assert.Equal(t, api.Name("welcome"), recs[1].Name)
}
