package identity

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Verifier resolves a bearer token to a user.
type Verifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

// MiddlewareOptions configure the auth gate.
type MiddlewareOptions struct {
	// Disabled skips verification entirely and injects DevUser. Dev only.
	Disabled bool
	DevUser  User
	// CacheTTL bounds how long a verified token is trusted without a
	// round trip to the provider. Zero means 1 minute.
	CacheTTL time.Duration
}

type cachedUser struct {
	user  User
	until time.Time
}

// RequireUser verifies the Authorization bearer token on every protected
// route and injects the resolved user into the request context. Infra
// endpoints, the swagger UI, and the auth endpoints themselves stay open.
func RequireUser(v Verifier, logger *zap.Logger, opts MiddlewareOptions) gin.HandlerFunc {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	devUser := opts.DevUser
	if devUser.ID == "" {
		devUser = User{ID: "dev", Email: "dev@localhost", DisplayName: "Dev"}
	}

	var (
		mu    sync.Mutex
		cache = map[string]cachedUser{}
	)

	return func(c *gin.Context) {
		if !isProtected(c.Request.URL.Path) {
			c.Next()
			return
		}
		if opts.Disabled {
			c.Request = c.Request.WithContext(WithUser(c.Request.Context(), devUser))
			c.Next()
			return
		}

		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		now := time.Now()
		mu.Lock()
		entry, hit := cache[token]
		mu.Unlock()
		if hit && now.Before(entry.until) {
			c.Request = c.Request.WithContext(WithUser(c.Request.Context(), entry.user))
			c.Next()
			return
		}

		user, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if err == ErrUnauthorized {
				mu.Lock()
				delete(cache, token)
				mu.Unlock()
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			if logger != nil {
				logger.Warn("identity verify failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "identity provider unavailable"})
			return
		}

		mu.Lock()
		cache[token] = cachedUser{user: user, until: now.Add(ttl)}
		mu.Unlock()

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func isProtected(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/docs":
		return false
	}
	if strings.HasPrefix(path, "/swagger") {
		return false
	}
	switch path {
	case "/api/v1/auth/login", "/api/v1/auth/signup":
		return false
	}
	return strings.HasPrefix(path, "/api/")
}
