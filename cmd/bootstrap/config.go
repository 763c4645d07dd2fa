package bootstrap

import (
	"time"

	"roomboard/internal/domain/room"
	"roomboard/internal/handler/api"
	"roomboard/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// BookingModule derives the booking settings shared by queries, store and handlers.
var BookingModule = fx.Module("booking",
	fx.Provide(
		NewLocation,
		NewImageConfig,
		NewRoomListOptions,
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
	),
)

func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Booking.Location()
}

func NewImageConfig(cfg config.Config) room.ImageConfig {
	return room.ImageConfig{
		MediaBaseURL: cfg.Booking.MediaBaseURL,
		Placeholder:  cfg.Booking.PlaceholderImage,
		Fallback:     cfg.Booking.FallbackImage,
	}
}

func NewRoomListOptions(cfg config.Config) api.RoomListOptions {
	return api.RoomListOptions{SearchDebounce: cfg.Booking.SearchDebounce}
}
