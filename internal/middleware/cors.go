package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"solitaire-go/internal/config"

	"github.com/gin-gonic/gin"
)

// DevCORS lets a table frontend served from another loopback port call the
// API during development. Outside development it does nothing, and
// WS_ALLOWED_ORIGINS entries are honored as well.
func DevCORS(cfg config.Config) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range cfg.WSAllowedOrigins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" || !cfg.IsDev() {
			c.Next()
			return
		}

		if isLoopbackOrigin(origin) || allowed[origin] {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
