package utility

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheService(client), mr
}

// 两种实现共用的行为
func exerciseCache(t *testing.T, cache CacheService) {
	ctx := context.Background()

	got, err := cache.Get(ctx, KeyNamespace+"missing")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, cache.Set(ctx, KeyNamespace+"article:a", "A", time.Minute))
	require.NoError(t, cache.Set(ctx, KeyNamespace+"article:b", "B", time.Minute))
	require.NoError(t, cache.Set(ctx, KeyNamespace+"search:result:1:x", "X", time.Minute))

	got, err = cache.Get(ctx, KeyNamespace+"article:a")
	require.NoError(t, err)
	assert.Equal(t, "A", got)

	keys, err := cache.Scan(ctx, KeyNamespace+"article:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{KeyNamespace + "article:a", KeyNamespace + "article:b"}, keys)

	require.NoError(t, cache.Delete(ctx, KeyNamespace+"article:a"))
	require.NoError(t, cache.Delete(ctx))
	got, _ = cache.Get(ctx, KeyNamespace+"article:a")
	assert.Equal(t, "", got)

	n, err := cache.DeletePattern(ctx, KeyNamespace+"*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = cache.DeletePattern(ctx, KeyNamespace+"*")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRedisCacheService(t *testing.T) {
	cache, _ := newRedisCache(t)
	exerciseCache(t, cache)
}

func TestMemoryCacheService(t *testing.T) {
	exerciseCache(t, NewMemoryCacheService(10, time.Minute))
}

func TestRedisCacheService_Expiration(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMemoryCacheService_Expiration(t *testing.T) {
	cache := NewMemoryCacheService(10, 0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 10*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "forever", "v", 0))
	time.Sleep(30 * time.Millisecond)

	got, _ := cache.Get(ctx, "k")
	assert.Equal(t, "", got)
	got, _ = cache.Get(ctx, "forever")
	assert.Equal(t, "v", got)
}

func TestMemoryCacheService_Eviction(t *testing.T) {
	cache := NewMemoryCacheService(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "1", 0))
	require.NoError(t, cache.Set(ctx, "b", "2", 0))
	require.NoError(t, cache.Set(ctx, "c", "3", 0))

	got, _ := cache.Get(ctx, "a")
	assert.Equal(t, "", got, "容量满时淘汰最久未使用的键")
	got, _ = cache.Get(ctx, "c")
	assert.Equal(t, "3", got)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		pattern  string
		expected bool
	}{
		{"精确匹配", "writing:rss:feed:latest", "writing:rss:feed:latest", true},
		{"精确不匹配", "writing:rss", "writing:rss:feed", false},
		{"前缀通配", "writing:article:a", "writing:article:*", true},
		{"前缀不符", "writing:search:x", "writing:article:*", false},
		{"中间通配", "writing:search:result:3:abc", "writing:*:result:*", true},
		{"后缀通配", "writing:article:a", "*:a", true},
		{"全部", "anything", "*", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchPattern(tt.key, tt.pattern))
		})
	}
}

func TestNewCacheServiceWithFallback(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, GetCacheServiceType(NewCacheServiceWithFallback(nil, 10, time.Minute)))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	assert.Equal(t, CacheTypeRedis, GetCacheServiceType(NewCacheServiceWithFallback(client, 10, time.Minute)))

	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer down.Close()
	assert.Equal(t, CacheTypeMemory, GetCacheServiceType(NewCacheServiceWithFallback(down, 10, time.Minute)))
}
