package components

import (
	repo_impl "roomtrack/internal/infra/repository"
	"roomtrack/internal/sweeper"
	"roomtrack/internal/usecase"
	"roomtrack/internal/usecase/commands"
	"roomtrack/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewPgxRunner,
			fx.As(new(commands.TxRunner)),
			fx.As(new(sweeper.TxRunner)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(sweeper.ReservationSweepStore)),
		),
		fx.Annotate(
			repo_impl.NewAttendanceRepository,
			fx.As(new(commands.AttendanceRepository)),
			fx.As(new(sweeper.AttendanceSweepStore)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRepository)),
		),
		// Read-side store for queries
		fx.Annotate(
			repo_impl.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
