package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/deniskimskku/writing-hub/pkg/response"
)

// 限流器闲置多久后被清理
const staleLimiterAge = 10 * time.Minute

// IPRateLimiter 按客户端 IP 分别限流
type IPRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	// 每个IP每分钟允许的请求数
	requestsPerMinute int
	// 突发请求数
	burst int

	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// NewIPRateLimiter 创建一个新的IP限流器，并启动后台清理。使用完毕需调用 Stop。
func NewIPRateLimiter(requestsPerMinute, burst int) *IPRateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if burst <= 0 {
		burst = requestsPerMinute
	}
	limiter := &IPRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		cleanupInterval:   5 * time.Minute,
		stopCh:            make(chan struct{}),
	}

	go limiter.cleanupStaleEntries()
	return limiter
}

// Allow 判断该 IP 当前是否允许请求
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

// getLimiter 获取指定IP的限流器
func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	info, exists := i.limiters[ip]
	if !exists {
		info = &limiterInfo{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(i.requestsPerMinute)), i.burst),
		}
		i.limiters[ip] = info
	}
	info.lastAccessed = time.Now()
	return info.limiter
}

// cleanupStaleEntries 定期清理长时间未使用的限流器
func (i *IPRateLimiter) cleanupStaleEntries() {
	ticker := time.NewTicker(i.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-i.stopCh:
			return
		case <-ticker.C:
			i.mu.Lock()
			for ip, info := range i.limiters {
				if time.Since(info.lastAccessed) > staleLimiterAge {
					delete(i.limiters, ip)
				}
			}
			i.mu.Unlock()
		}
	}
}

// Stop 停止后台清理
func (i *IPRateLimiter) Stop() {
	i.stopOnce.Do(func() { close(i.stopCh) })
}

// RateLimit 使用给定限流器的中间件
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(getClientIP(c)) {
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}

// getClientIP 获取客户端真实IP地址
func getClientIP(c *gin.Context) string {
	if clientIP := c.GetHeader("X-Real-IP"); clientIP != "" {
		return clientIP
	}

	// X-Forwarded-For 格式为 client, proxy1, proxy2，取第一个
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip, _, err := net.SplitHostPort(first); err == nil {
			return ip
		}
		return first
	}

	if ip, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return ip
	}
	return c.Request.RemoteAddr
}
