package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS answers preflight requests and sets the CORS headers. origens is the
// comma-separated CORS_ORIGINS value; "*" or empty allows any origin,
// otherwise only listed origins are echoed back.
func CORS(origens string) gin.HandlerFunc {
	permitidas := make(map[string]bool)
	qualquer := strings.TrimSpace(origens) == "" || strings.TrimSpace(origens) == "*"
	for _, o := range strings.Split(origens, ",") {
		if o = strings.TrimSpace(o); o != "" {
			permitidas[o] = true
		}
	}

	return func(c *gin.Context) {
		origem := c.GetHeader("Origin")
		switch {
		case qualquer:
			c.Header("Access-Control-Allow-Origin", "*")
		case permitidas[origem]:
			c.Header("Access-Control-Allow-Origin", origem)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+RequestIDHeader)
		// downloads need the file name, throttled clients the retry hint
		c.Header("Access-Control-Expose-Headers", RequestIDHeader+", Content-Disposition, Retry-After")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
