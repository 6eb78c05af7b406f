package components

import (
	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/pkg/config"
	"roomtrack/internal/usecase"
	"roomtrack/internal/usecase/commands"
	"roomtrack/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPolicy,
)

// NewPolicy fixes all window math to the configured business timezone,
// regardless of where the server runs.
func NewPolicy(cfg config.Config) reservation.Policy {
	return reservation.DefaultPolicy(cfg.Business.Location())
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		usecase.NewAuthUseCase,
		commands.NewReservationCommands,
		commands.NewCheckInCommands,
		commands.NewRoomCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
