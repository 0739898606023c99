package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/api/public/search", ok)
	r.GET("/rss.xml", ok)
	return r
}

func TestCors(t *testing.T) {
	r := newEngine(Cors())

	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"API 带 Origin", http.MethodGet, "/api/public/search", "https://deniskim1.com", http.StatusOK, "https://deniskim1.com"},
		{"API 无 Origin", http.MethodGet, "/api/public/search", "", http.StatusOK, "*"},
		{"预检请求", http.MethodOptions, "/api/public/search", "https://a.dev", http.StatusNoContent, "https://a.dev"},
		{"非 API 路径", http.MethodGet, "/rss.xml", "https://a.dev", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestIPRateLimiter_Allow(t *testing.T) {
	limiter := NewIPRateLimiter(60, 2)
	defer limiter.Stop()

	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.False(t, limiter.Allow("1.1.1.1"), "突发额度用完")
	assert.True(t, limiter.Allow("2.2.2.2"), "不同 IP 互不影响")
}

func TestIPRateLimiter_Defaults(t *testing.T) {
	limiter := NewIPRateLimiter(0, 0)
	defer limiter.Stop()
	limiter.Stop()

	assert.Equal(t, 60, limiter.requestsPerMinute)
	assert.Equal(t, 60, limiter.burst)
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)
	defer limiter.Stop()
	r := newEngine(RateLimit(limiter))

	do := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/public/search", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1, 172.16.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		expected   string
	}{
		{"X-Real-IP 优先", "9.9.9.9", "1.1.1.1", "3.3.3.3:1234", "9.9.9.9"},
		{"取 X-Forwarded-For 第一个", "", " 1.1.1.1 , 2.2.2.2", "3.3.3.3:1234", "1.1.1.1"},
		{"带端口的转发地址", "", "1.1.1.1:5555", "3.3.3.3:1234", "1.1.1.1"},
		{"RemoteAddr", "", "", "3.3.3.3:1234", "3.3.3.3"},
		{"RemoteAddr 无端口", "", "", "3.3.3.3", "3.3.3.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.expected, getClientIP(c))
		})
	}
}
