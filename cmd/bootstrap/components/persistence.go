package components

import (
	"log/slog"

	"roomboard/internal/infra/cache"
	"roomboard/internal/infra/postgres"
	"roomboard/internal/pkg/config"
	"roomboard/internal/usecase/commands"
	"roomboard/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// PersistenceModule puts the redis cache in front of the room store when a
// redis client is configured.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewRoomSource,
	),
)

func NewRoomSource(store *postgres.RoomStore, client *redis.Client, cfg config.Config, logger *slog.Logger) (queries.RoomSource, commands.RoomCacheInvalidator) {
	if client == nil {
		return store, cache.Disabled{}
	}
	cached := cache.NewRoomSource(store, client, cfg.Redis.TTL, logger,
		cache.WithAvailabilityTTL(cfg.Redis.AvailabilityTTL))
	return cached, cached
}
