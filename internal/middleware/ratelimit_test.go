package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "k", 3, time.Minute), "попытка %d", i+1)
	}
	assert.False(t, l.Allow(ctx, "k", 3, time.Minute))
	assert.True(t, l.Allow(ctx, "other", 3, time.Minute), "у другого ключа своё окно")

	// Окно истекло - счётчик сбрасывается
	now = now.Add(time.Minute)
	assert.True(t, l.Allow(ctx, "k", 3, time.Minute))
}

func TestMemoryLimiter_ZeroLimitDisables(t *testing.T) {
	l := NewMemoryLimiter()
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow(context.Background(), "k", 0, time.Minute))
	}
	assert.Empty(t, l.buckets)
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(NewMemoryLimiter(), "login", 2, 30*time.Second), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeLimitExceeded, body.Error.Code)

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code, "лимит считается по IP")
}

func TestGuards_ThrottledWithoutLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guards := NewGuards(nil, nil)
	r := gin.New()
	r.POST("/register", append(guards.Throttled("register"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})...)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
