package components

import (
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/pkg/config"
	"decor-booking/internal/usecase"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"

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
	commands.NewSideEffects,
	NewBookingSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingUseCase,
		commands.NewPaymentUseCase,
		commands.NewReviewUseCase,
		commands.NewNotificationUseCase,
		commands.NewUserAdminUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewReviewQueries,
		queries.NewNotificationQueries,
		queries.NewAdminQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingSettings(cfg config.Config) (queries.BookingSettings, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return queries.BookingSettings{}, err
	}
	return queries.BookingSettings{
		Location: loc,
		TaxRate:  cfg.Booking.TaxRate,
		Currency: cfg.Booking.Currency,
	}, nil
}
