package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityConfig shapes the Content-Security-Policy sent with API responses.
type SecurityConfig struct {
	// AllowedDomains are added to connect-src, e.g. the web client that opens the
	// notification stream.
	AllowedDomains []string
	// HSTS is only sent outside development.
	HSTS bool
}

// SecurityHeadersWithConfig sets the hardening headers on every response. The API serves
// JSON and data-URI QR codes only, so the policy is locked down to that.
func SecurityHeadersWithConfig(config SecurityConfig) echo.MiddlewareFunc {
	csp := buildCSP(config)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cross-Origin-Resource-Policy", "same-site")
			if config.HSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			h.Del("Server")
			return next(c)
		}
	}
}

func buildCSP(config SecurityConfig) string {
	directives := []string{
		"default-src 'none'",
		"frame-ancestors 'none'",
		"img-src data:",
	}
	connect := append([]string{"'self'"}, config.AllowedDomains...)
	for _, d := range config.AllowedDomains {
		if ws := websocketOrigin(d); ws != "" {
			connect = append(connect, ws)
		}
	}
	directives = append(directives, "connect-src "+strings.Join(connect, " "))
	return strings.Join(directives, "; ")
}

// websocketOrigin maps an http(s) origin to its ws(s) counterpart.
func websocketOrigin(origin string) string {
	switch {
	case strings.HasPrefix(origin, "https://"):
		return "wss://" + strings.TrimPrefix(origin, "https://")
	case strings.HasPrefix(origin, "http://"):
		return "ws://" + strings.TrimPrefix(origin, "http://")
	}
	return ""
}
