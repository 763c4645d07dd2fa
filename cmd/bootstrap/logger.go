package bootstrap

import (
	"log/slog"
	"os"

	"roomboard/internal/handler/middleware"
	"roomboard/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log, os.Stdout)
}
