package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(perMinute, burst int) *gin.Engine {
		r := gin.New()
		l := NewLoginRateLimiter(perMinute, burst)
		r.POST("/login", l.Middleware(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	attempt := func(r *gin.Engine, ip string) int {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = ip + ":12345"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("throttles after the burst", func(t *testing.T) {
		r := newRouter(1, 3)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, attempt(r, "10.0.0.1"))
		}
		assert.Equal(t, http.StatusTooManyRequests, attempt(r, "10.0.0.1"))
	})

	t.Run("limits are per client", func(t *testing.T) {
		r := newRouter(1, 1)
		assert.Equal(t, http.StatusOK, attempt(r, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, attempt(r, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, attempt(r, "10.0.0.2"))
	})
}
