package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

const (
	sessionHeader = "x-session-token"
	sessionCookie = "session"
	claimsKey     = "session_claims"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, http.StatusText(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// AuthRequired validates the session token from the x-session-token
// header, falling back to the session cookie set at login.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sessionHeader)
		if token == "" {
			token, _ = c.Cookie(sessionCookie)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminRequired allows only admin sessions through. Must run after
// AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := SessionFromContext(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the validated claims set by AuthRequired,
// or nil when the request is unauthenticated.
func SessionFromContext(c *gin.Context) *services.SessionClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.SessionClaims)
	return claims
}

// loginLimiter hands out one token-bucket limiter per client IP so a
// brute-force attempt on one address doesn't lock everyone out.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		// 1 attempt per 2 seconds sustained, bursts of 5.
		lim = rate.NewLimiter(rate.Every(2*time.Second), 5)
		l.limiters[ip] = lim
	}
	return lim.Allow()
}

// LoginRateLimit throttles login attempts per client IP.
func LoginRateLimit() gin.HandlerFunc {
	limiter := newLoginLimiter()
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, slow down"})
			return
		}
		c.Next()
	}
}
