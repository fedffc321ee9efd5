package middleware

import (
	"net/http"
	"sync"
	"time"

	"aguacontrol/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ── Per-IP token buckets ──────────────────────────────────────────────────────

type visitante struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter hands out one token bucket per client IP.
type IPLimiter struct {
	mu         sync.Mutex
	visitantes map[string]*visitante
	every      rate.Limit
	burst      int
	purgadoEn  time.Time
	now        func() time.Time
}

// NewIPLimiter allows burst requests at once and one more every interval.
func NewIPLimiter(interval time.Duration, burst int) *IPLimiter {
	return &IPLimiter{
		visitantes: make(map[string]*visitante),
		every:      rate.Every(interval),
		burst:      burst,
		now:        time.Now,
	}
}

// Allow takes a token from ip's bucket. Every purgeInterval one call also
// drops idle buckets, so the map stays bounded without a background goroutine.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	now := l.now()
	switch {
	case l.purgadoEn.IsZero():
		l.purgadoEn = now
	case now.Sub(l.purgadoEn) >= purgeInterval:
		if n := l.purgeLocked(now, purgeInterval); n > 0 {
			log.Debug().Int("entries_purged", n).Msg("rate limiter purged")
		}
		l.purgadoEn = now
	}
	v, ok := l.visitantes[ip]
	if !ok {
		v = &visitante{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitantes[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

// Purge drops buckets idle for longer than idle. Returns how many were dropped.
func (l *IPLimiter) Purge(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.purgeLocked(l.now(), idle)
}

func (l *IPLimiter) purgeLocked(now time.Time, idle time.Duration) int {
	n := 0
	for ip, v := range l.visitantes {
		if now.Sub(v.lastSeen) > idle {
			delete(l.visitantes, ip)
			n++
		}
	}
	return n
}

// ── Login rate limiter ────────────────────────────────────────────────────────

// LoginRateLimiter limits credential attempts: 5 at once, then one every 12s
// per IP (20 per minute sustained).
func LoginRateLimiter() gin.HandlerFunc {
	return Limit(NewIPLimiter(12*time.Second, 5), "Demasiados intentos de acceso. Intente en 1 minuto.")
}

// Limit rejects requests whose IP has no token left.
func Limit(l *IPLimiter, mensaje string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			log.Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("rate limit")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(mensaje))
			return
		}
		c.Next()
	}
}

// purgeInterval is both how often Allow sweeps and how long a bucket may
// sit idle before it is dropped.
const purgeInterval = 5 * time.Minute
