package bootstrap

import (
	"roomboard/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	BookingModule,
	LoggerModule,
	DBModule,
	CacheModule,
	JWTModule,
	components.RepositoryModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
