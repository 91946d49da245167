package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/config"
	"github.com/polkiloo/ordersvc/internal/events"
)

// Module provides the Kafka producer as the event publisher.
var Module = fx.Options(
	fx.Provide(newProducer),
	fx.Provide(func(p *Producer) events.Publisher { return p }),
	fx.Invoke(registerLifecycle),
)

func newProducer(cfg *config.Config) *Producer {
	return NewProducer(cfg.KafkaBrokers, cfg.KafkaClientID)
}

func registerLifecycle(lc fx.Lifecycle, p *Producer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Close()
		},
	})
}
