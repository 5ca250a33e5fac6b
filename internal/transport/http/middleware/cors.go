package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// OriginAllowed accepts same-origin requests, requests without an Origin
// header and anything listed in allowed.
func OriginAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}

	for _, allowedOrigin := range allowed {
		if allowedOrigin == origin || allowedOrigin == "*" {
			return true
		}
	}
	return false
}

func CORSMiddleware(allowedOrigins []string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if !OriginAllowed(c.Request, allowedOrigins) {
			logger.Warn("origin not allowed", "origin", origin, "allowed", allowedOrigins)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
			return
		}

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight OPTIONS requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
