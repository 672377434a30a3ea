package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/HSouheill/sower_backend/monitoring"
	"github.com/HSouheill/sower_backend/security"
)

const loggerKey = "_log"

// RequestLoggerConfig for the request logging middleware.
type RequestLoggerConfig struct {
	Logger   *zerolog.Logger
	SkipPath []string
}

// RequestLogger returns the request-scoped logger, or the global one outside of a request.
func RequestLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(loggerKey).(*zerolog.Logger); ok {
		return l
	}
	return &log.Logger
}

// SetLogger tags every request with an id, stores a request-scoped logger on both the echo
// and the request context, records request metrics and logs failed requests.
func SetLogger(config ...RequestLoggerConfig) echo.MiddlewareFunc {
	var cfg RequestLoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	skip := make(map[string]struct{}, len(cfg.SkipPath))
	for _, p := range cfg.SkipPath {
		skip[p] = struct{}{}
	}
	sublog := log.Logger
	if cfg.Logger != nil {
		sublog = *cfg.Logger
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = xid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			reqlogger := sublog.With().Str("request_id", id).Logger()
			c.Set(loggerKey, &reqlogger)
			c.SetRequest(req.WithContext(reqlogger.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = req.URL.Path
			}
			if _, ok := skip[path]; ok {
				return nil
			}

			status := c.Response().Status
			latency := time.Since(start)
			monitoring.HttpRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			monitoring.ResponseTimeHistogram.WithLabelValues(req.Method, path).Observe(latency.Seconds())

			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = reqlogger.Error().Interface("headers", security.SanitizeHeaders(req.Header))
			case status >= http.StatusBadRequest:
				event = reqlogger.Warn()
			default:
				event = reqlogger.Debug()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("ip", c.RealIP()).
				Int("status", status).
				Dur("latency", latency).
				Err(err).
				Msg("Request")
			return nil
		}
	}
}
