package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS echoes allowed origins with credentials so the session cookie travels.
// An empty list allows any origin without credentials (local development).
func CORS(origins []string) gin.HandlerFunc {
	permitido := make(map[string]bool, len(origins))
	for _, o := range origins {
		permitido[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case len(permitido) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case permitido[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
