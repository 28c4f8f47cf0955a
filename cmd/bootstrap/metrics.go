package bootstrap

import (
	"decor-booking/internal/infra/metrics"
	"decor-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(
			metrics.NewLifecycle,
			fx.As(new(shared.LifecycleMetrics)),
		),
	),
)
