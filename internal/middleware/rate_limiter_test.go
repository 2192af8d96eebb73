package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestJanela_LimitePorIP(t *testing.T) {
	agora := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	j := newJanela(2, time.Minute)
	j.now = func() time.Time { return agora }

	ok, _ := j.permitir("1.1.1.1")
	assert.True(t, ok)
	ok, _ = j.permitir("1.1.1.1")
	assert.True(t, ok)
	ok, _ = j.permitir("1.1.1.1")
	assert.False(t, ok)

	ok, _ = j.permitir("2.2.2.2")
	assert.True(t, ok, "other IPs have their own window")

	agora = agora.Add(time.Minute + time.Second)
	ok, fim := j.permitir("1.1.1.1")
	assert.True(t, ok, "new window")
	assert.Equal(t, agora.Add(time.Minute), fim)
}

func TestJanela_PurgaEntradasExpiradas(t *testing.T) {
	agora := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	j := newJanela(5, time.Minute)
	j.now = func() time.Time { return agora }

	j.permitir("1.1.1.1")
	j.permitir("2.2.2.2")
	assert.Len(t, j.entries, 2)

	agora = agora.Add(purgeInterval + time.Second)
	j.permitir("3.3.3.3")
	assert.Len(t, j.entries, 1)
}

func TestRateLimiter_Responde429(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
