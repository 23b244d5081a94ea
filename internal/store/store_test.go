package store

import (
	"context"
	"testing"
	"time"

	"homecare-admin/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := NewRedisClient(context.Background(), &config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisKV(c), mr
}

func TestRedisKV(t *testing.T) {
	kv, mr := setupRedisKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	v, err = kv.Take(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.False(t, mr.Exists("k"))

	require.NoError(t, kv.Set(ctx, "ttl", "v", time.Second))
	mr.FastForward(2 * time.Second)
	_, err = kv.Take(ctx, "ttl")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewRedisClient(ctx, &config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestMemoryKV_Expiry(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, kv.Set(ctx, "forever", "2", 0))

	now = now.Add(2 * time.Minute)
	_, err := kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	v, err := kv.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, kv.Del(ctx, "forever"))
	_, err = kv.Take(ctx, "forever")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestFlashStore_PopOnce(t *testing.T) {
	redisKV, _ := setupRedisKV(t)
	for name, kv := range map[string]KV{"redis": redisKV, "memory": NewMemoryKV()} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			fs := NewFlashStore(kv, time.Minute)

			f, err := fs.Pop(ctx, "s1")
			require.NoError(t, err)
			assert.Nil(t, f)

			require.NoError(t, fs.Put(ctx, "s1", Flash{Kind: FlashSuccess, Message: "Agency created successfully."}))
			f, err = fs.Pop(ctx, "s1")
			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, "Agency created successfully.", f.Message)

			f, err = fs.Pop(ctx, "s1")
			require.NoError(t, err)
			assert.Nil(t, f)

			// 无会话时忽略
			require.NoError(t, fs.Put(ctx, "", Flash{Message: "x"}))
		})
	}
}
