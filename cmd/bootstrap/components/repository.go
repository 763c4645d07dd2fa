package components

import (
	"roomboard/internal/infra/postgres"
	"roomboard/internal/usecase/commands"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			postgres.NewRoomStore,
			fx.As(fx.Self()),
			fx.As(new(commands.RoomRepository)),
		),
	),
)
