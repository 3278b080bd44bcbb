package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Rate Limiter Tests
// ==========================

func newLimitedRouter(t *testing.T, limit int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	router := gin.New()
	router.POST("/submit", NewRateLimiter(RateLimiterConfig{
		RedisClient: client,
		Limit:       limit,
		Window:      window,
	}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, mr
}

func doPost(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	router, _ := newLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := doPost(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	router, _ := newLimitedRouter(t, 2, time.Minute)

	doPost(router, "10.0.0.1:1234")
	doPost(router, "10.0.0.1:1234")
	rec := doPost(router, "10.0.0.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	router, _ := newLimitedRouter(t, 1, time.Minute)

	first := doPost(router, "10.0.0.1:1234")
	second := doPost(router, "10.0.0.2:1234")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	router, mr := newLimitedRouter(t, 1, time.Minute)

	doPost(router, "10.0.0.1:1234")
	rec := doPost(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	mr.FastForward(time.Minute + time.Second)

	rec = doPost(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	router, mr := newLimitedRouter(t, 1, time.Minute)
	mr.Close()

	rec := doPost(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_UsesForwardedForHeader(t *testing.T) {
	router, _ := newLimitedRouter(t, 1, time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req2 := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req2.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}
