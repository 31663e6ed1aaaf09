package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Definitions) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisDefinitions_Contract(t *testing.T) {
	_, defs := setup(t)
	ports.RunDefinitionProviderContract(t, defs)
}

func TestRedisDefinitions_PrefixAndScope(t *testing.T) {
	mr, defs := setup(t, redis.WithPrefix("custom:app:"), redis.WithScope("queue-1"))

	defs.Set("Target", "zombie")

	assert.Equal(t, "custom:app:queue-1", defs.Key())
	assert.Equal(t, "zombie", mr.HGet("custom:app:queue-1", "target"))

	other := defs.Scoped("queue-2")
	assert.False(t, other.Has("target"), "scopes are isolated")
	other.Set("target", "skeleton")

	v, _ := defs.Get("target")
	assert.Equal(t, "zombie", v)
}

func TestRedisDefinitions_SeedAndClear(t *testing.T) {
	_, defs := setup(t)
	ctx := context.Background()

	require.NoError(t, defs.Seed(ctx, map[string]string{"A": "1", "b": "2"}))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, defs.All())

	require.NoError(t, defs.Clear(ctx))
	assert.Empty(t, defs.All())
	require.NoError(t, defs.Seed(ctx, nil))
}

func TestRedisDefinitions_FailuresGoToSink(t *testing.T) {
	rec := diag.NewRecorder()
	mr, defs := setup(t, redis.WithSink(rec), redis.WithTimeout(200*time.Millisecond))
	require.NoError(t, defs.Ping(context.Background()))

	mr.Close()

	_, ok := defs.Get("anything")
	assert.False(t, ok)
	assert.False(t, defs.Has("anything"))
	assert.Empty(t, defs.All())
	assert.Equal(t, 3, rec.ErrorsContaining("redis definitions"))
}
