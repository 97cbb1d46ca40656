package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client)
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	sess := New(uuid.New(), "admin", "admin", time.Hour)

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Username, got.Username)
	assert.Equal(t, sess.Role, got.Role)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is not an error.
	assert.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	_, store := setupRedis(t)
	exerciseStore(t, store)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Minute))
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, store := setupRedis(t)
	ctx := context.Background()

	sess := New(uuid.New(), "nurse", "staff", time.Minute)
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists(keyPrefix+sess.ID))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreRejectsExpiredSession(t *testing.T) {
	_, store := setupRedis(t)
	sess := New(uuid.New(), "nurse", "staff", -time.Second)
	assert.Error(t, store.Save(context.Background(), sess))
}

func TestMemoryStoreExpiredSessionIsMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	sess := New(uuid.New(), "nurse", "staff", time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Save(context.Background(), sess))

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInstrumentedStore(t *testing.T) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ops"}, []string{"operation", "status"})
	store := Instrument(NewMemoryStore(time.Minute), ops)
	ctx := context.Background()

	sess := New(uuid.New(), "admin", "admin", time.Hour)
	require.NoError(t, store.Save(ctx, sess))
	_, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("get", "miss")))
}
