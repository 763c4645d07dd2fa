package middleware

import (
	"io"
	"log/slog"
	"time"

	"roomboard/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	FormTokenHeader = "Form-Token"
	RequestIDHeader = "X-Request-ID"

	requestIDKey   = "request_id"
	logAttrsKey    = "log_attrs"
	maxRequestID   = 64
	healthCheckURL = "/health"
)

// NewLogger builds the process logger and installs it as the slog default.
// Release mode writes JSON; every other mode writes text.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if t, ok := a.Value.Any().(time.Time); ok && a.Key == slog.TimeKey {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// RequestLogger tags each request with an id, echoes it in X-Request-ID and
// writes one line when the request completes. The caller is read after the
// handler chain because authentication runs per route group.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		id := requestIDFrom(c.GetHeader(RequestIDHeader))
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		attrs := []slog.Attr{
			slog.String("request_id", id),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if p, ok := GetPrincipal(c); ok {
			attrs = append(attrs, slog.String("user_id", p.UserID.String()), slog.String("role", p.Role.String()))
			if org := p.OrganizationScope(); org != uuid.Nil {
				attrs = append(attrs, slog.String("organization_id", org.String()))
			}
		}
		if token := c.GetHeader(FormTokenHeader); token != "" {
			attrs = append(attrs, slog.String("form_token", token))
		}
		if extra, ok := c.Get(logAttrsKey); ok {
			attrs = append(attrs, extra.([]slog.Attr)...)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), requestLevel(route, status), "request completed", attrs...)
	}
}

// AddLogAttrs attaches attrs to the completion line RequestLogger writes.
func AddLogAttrs(c *gin.Context, attrs ...slog.Attr) {
	var all []slog.Attr
	if prev, ok := c.Get(logAttrsKey); ok {
		all = prev.([]slog.Attr)
	}
	c.Set(logAttrsKey, append(all, attrs...))
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func requestLevel(route string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case route == healthCheckURL:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// requestIDFrom keeps an upstream id when it is short and header-safe.
func requestIDFrom(inbound string) string {
	if inbound == "" || len(inbound) > maxRequestID {
		return uuid.NewString()
	}
	for _, r := range inbound {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return uuid.NewString()
		}
	}
	return inbound
}
