package bootstrap

import (
	"context"
	"log/slog"

	"decor-booking/internal/infra/broker"
	"decor-booking/internal/pkg/config"
	"decor-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher degrades to a no-op publisher when RabbitMQ is absent or unreachable.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if cfg.Broker.URL == "" {
		logger.Info("RabbitMQ未設定のためイベント配信を無効化します")
		return broker.NopPublisher{}
	}

	pub, err := broker.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		logger.Error("RabbitMQへの接続に失敗しました", "error", err.Error())
		return broker.NopPublisher{}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
