package middleware

import (
	"net/http"
	"sync"
	"time"

	"epicontrol/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// janela is a fixed-window counter per client IP. Expired entries are purged
// on the request path at most once per purgeInterval.
type janela struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*janelaEntry
	nextPurge time.Time
}

type janelaEntry struct {
	count     int
	windowEnd time.Time
}

const purgeInterval = 5 * time.Minute

func newJanela(limit int, window time.Duration) *janela {
	return &janela{
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*janelaEntry),
	}
}

// permitir counts one hit for ip and reports whether it is within the limit,
// plus the end of the current window.
func (j *janela) permitir(ip string) (bool, time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	if now.After(j.nextPurge) {
		j.purge(now)
		j.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := j.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &janelaEntry{windowEnd: now.Add(j.window)}
		j.entries[ip] = entry
	}
	entry.count++
	return entry.count <= j.limit, entry.windowEnd
}

func (j *janela) purge(now time.Time) {
	purged := 0
	for ip, entry := range j.entries {
		if now.After(entry.windowEnd) {
			delete(j.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(j.entries)).Msg("rate limiter purgado")
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	j := newJanela(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := j.permitir(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Com(apierror.CodigoLimiteRequisicoes, "Muitas tentativas de login. Tente novamente em 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to every route.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	j := newJanela(limit, window)
	return func(c *gin.Context) {
		ok, fim := j.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", fim.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Com(apierror.CodigoLimiteRequisicoes, "Muitas requisições. Tente novamente em instantes."))
			return
		}
		c.Next()
	}
}
