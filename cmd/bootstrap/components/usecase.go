package components

import (
	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/pkg/config"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.AdminConfig {
		return cfg.Admin
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthUseCase,
		commands.NewBookingUseCase,
		commands.NewManageUseCase,
		commands.NewVerificationUseCase,
		commands.NewEventUseCase,
		commands.NewCatalogUseCase,
		commands.NewLeadUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewEventQueries,
		queries.NewRSVPQueries,
		queries.NewCatalogQueries,
		queries.NewLeadQueries,
	),
)
