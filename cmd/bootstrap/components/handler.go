package components

import (
	"roomboard/internal/handler"
	"roomboard/internal/handler/api"
	"roomboard/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCalendarHandler,
		api.NewRoomHandler,
		api.NewRoomStoreHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
