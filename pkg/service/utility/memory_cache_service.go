package utility

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// 内存缓存默认参数
const (
	DefaultMemoryCacheCapacity = 500
	DefaultMemoryCacheTTL      = 30 * time.Minute
)

// memoryCacheService 是基于 LRU 的内存缓存实现（Redis 不可用时的降级方案）。
// 所有条目共享同一个 TTL，Set 传入的 expiration 只能缩短不能延长它。
type memoryCacheService struct {
	cache *expirable.LRU[string, memoryItem]
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func (i memoryItem) expired() bool {
	return !i.expiresAt.IsZero() && time.Now().After(i.expiresAt)
}

// NewMemoryCacheService 创建内存缓存服务实例
func NewMemoryCacheService(capacity int, ttl time.Duration) CacheService {
	if capacity <= 0 {
		capacity = DefaultMemoryCacheCapacity
	}
	if ttl < 0 {
		ttl = DefaultMemoryCacheTTL
	}
	return &memoryCacheService{
		cache: expirable.NewLRU[string, memoryItem](capacity, nil, ttl),
	}
}

// Set 设置缓存
func (s *memoryCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	item := memoryItem{value: value}
	if expiration > 0 {
		item.expiresAt = time.Now().Add(expiration)
	}
	s.cache.Add(key, item)
	return nil
}

// Get 获取缓存，不存在或已过期时返回空字符串
func (s *memoryCacheService) Get(ctx context.Context, key string) (string, error) {
	item, ok := s.cache.Get(key)
	if !ok {
		return "", nil
	}
	if item.expired() {
		s.cache.Remove(key)
		return "", nil
	}
	return item.value, nil
}

// Delete 删除缓存
func (s *memoryCacheService) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Remove(key)
	}
	return nil
}

// Scan 查找匹配的键
func (s *memoryCacheService) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	for _, key := range s.cache.Keys() {
		if matchPattern(key, pattern) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// DeletePattern 删除所有匹配的键
func (s *memoryCacheService) DeletePattern(ctx context.Context, pattern string) (int, error) {
	keys, _ := s.Scan(ctx, pattern)
	for _, key := range keys {
		s.cache.Remove(key)
	}
	return len(keys), nil
}

// matchPattern 简单的模式匹配（支持 * 通配符）
func matchPattern(s, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return s == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		pos := strings.Index(s, part)
		if pos == -1 {
			return false
		}
		s = s[pos+len(part):]
	}
	return strings.HasSuffix(s, last)
}
