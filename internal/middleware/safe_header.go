package middleware

import "github.com/gin-gonic/gin"

var apiHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Cache-Control":           "no-store",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"Permissions-Policy":      "camera=(), microphone=(), geolocation=()",
}

// SafeHeader adds security-related headers to each response.
// Swagger UI needs scripts and styles so it is served without the CSP.
func SafeHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range apiHeaders {
			if k == "Content-Security-Policy" && isSwaggerPath(c.Request.URL.Path) {
				continue
			}
			c.Header(k, v)
		}
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}

func isSwaggerPath(path string) bool {
	return len(path) >= len("/swagger/") && path[:len("/swagger/")] == "/swagger/"
}
