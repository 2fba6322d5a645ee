package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin is a parsed origin pattern of the form
// "https://*.example.com": any single subdomain of the suffix, on the
// given scheme, is allowed.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses an allowed-origin pattern containing a
// subdomain wildcard. Returns nil for exact origins and malformed
// patterns. The wildcard must be the entire leftmost label and the
// suffix must contain at least two labels.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := strings.TrimPrefix(pattern, scheme)
	if !strings.HasPrefix(rest, "*.") {
		return nil
	}

	suffix := rest[1:] // keep the leading dot
	if strings.Contains(suffix, "*") {
		return nil
	}

	labels := strings.Split(strings.TrimPrefix(suffix, "."), ".")
	if len(labels) < 2 {
		return nil
	}
	for _, label := range labels {
		if label == "" {
			return nil
		}
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether the request origin is exactly one subdomain
// level under the pattern's suffix, on the same scheme.
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := strings.TrimPrefix(origin, w.scheme)
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}

	sub := strings.TrimSuffix(host, w.suffix)
	if sub == "" || strings.ContainsAny(sub, "./") {
		return false
	}
	return true
}

// CORS middleware to handle cross-origin requests.
// Reads the CORS_ALLOWED_ORIGINS environment variable (comma-separated)
// to restrict origins; entries may use a subdomain wildcard like
// "https://*.lifelens-app.pages.dev". If unset, all origins are allowed.
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcardOrigins []*wildcardOrigin
	if !allowAll {
		for _, entry := range strings.Split(allowedOriginsStr, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if wildcard := parseWildcardOrigin(entry); wildcard != nil {
				wildcardOrigins = append(wildcardOrigins, wildcard)
				continue
			}
			exactOrigins = append(exactOrigins, entry)
		}
	}

	originAllowed := func(origin string) bool {
		for _, allowed := range exactOrigins {
			if origin == allowed {
				return true
			}
		}
		for _, wildcard := range wildcardOrigins {
			if wildcard.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if originAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		} else if c.Request.Method == "OPTIONS" {
			// Origin not allowed; reject the preflight outright.
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
