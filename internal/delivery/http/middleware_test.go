package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://greentail.app",
			allowedOrigins: []string{"https://greentail.app"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"https://greentail.app", "http://localhost:3000"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "https://greentail.app",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{"allowed origin - GET request", "http://localhost:3000", http.MethodGet, http.StatusOK, true},
		{"allowed origin - preflight", "http://localhost:3000", http.MethodOptions, http.StatusNoContent, true},
		{"disallowed origin", "http://evil.com", http.MethodGet, http.StatusOK, false},
		{"no origin header", "", http.MethodGet, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware([]string{"http://localhost:3000"}))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			corsHeader := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantCORS {
				assert.Equal(t, tt.origin, corsHeader)
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
			} else {
				assert.Empty(t, corsHeader, "Access-Control-Allow-Origin should not be set")
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an ID when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(requestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagates the caller's ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?q=salmon", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0].ContextMap()
	assert.Equal(t, "HTTP request", entries[0].Message)
	assert.Equal(t, "/ok", ok["path"])
	assert.Equal(t, "q=salmon", ok["query"])
	assert.EqualValues(t, http.StatusOK, ok["status"])
	assert.NotEmpty(t, ok["request_id"])

	assert.Equal(t, "HTTP request with errors", entries[1].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(RecoveryMiddleware(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

type requestObservation struct {
	method string
	route  string
	status int
}

type fakeRequestRecorder struct {
	mu           sync.Mutex
	observations []requestObservation
}

func (f *fakeRequestRecorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, requestObservation{method, route, status})
}

func TestMetricsMiddleware(t *testing.T) {
	recorder := &fakeRequestRecorder{}

	router := gin.New()
	router.Use(MetricsMiddleware(recorder))
	router.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/7", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, recorder.observations, 2)
	assert.Equal(t, requestObservation{http.MethodGet, "/products/:id", http.StatusOK}, recorder.observations[0])
	assert.Equal(t, requestObservation{http.MethodGet, "unmatched", http.StatusNotFound}, recorder.observations[1])
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("allows burst then rejects", func(t *testing.T) {
		limiter := NewIPRateLimiter(60, 3)
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), "request %d should pass", i)
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter := NewIPRateLimiter(60, 1)
		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("prunes idle visitors", func(t *testing.T) {
		limiter := NewIPRateLimiter(60, 1)
		limiter.Allow("10.0.0.1")
		limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorIdleTimeout)
		limiter.Allow("10.0.0.2")

		limiter.pruneLocked(time.Now())

		assert.NotContains(t, limiter.visitors, "10.0.0.1")
		assert.Contains(t, limiter.visitors, "10.0.0.2")
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(NewIPRateLimiter(60, 2)))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
