package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"roomboard/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always allows the Form-Token header, since every room
// mutation carries it, and exposes Retry-After for rate-limited clients.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) (gin.HandlerFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, FormTokenHeader),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, "Retry-After"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}
	logger.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg), nil
}

func withHeader(headers []string, name string) []string {
	if slices.ContainsFunc(headers, func(h string) bool { return strings.EqualFold(h, name) }) {
		return headers
	}
	return append(slices.Clone(headers), name)
}
