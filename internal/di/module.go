package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/adapter/catalog"
	"github.com/polkiloo/ordersvc/internal/adapter/identity"
	"github.com/polkiloo/ordersvc/internal/adapter/kafka"
	"github.com/polkiloo/ordersvc/internal/app"
	"github.com/polkiloo/ordersvc/internal/cache"
	"github.com/polkiloo/ordersvc/internal/config"
	"github.com/polkiloo/ordersvc/internal/logger"
	"github.com/polkiloo/ordersvc/internal/server/http/handlers"
	"github.com/polkiloo/ordersvc/internal/server/http/router"
	"github.com/polkiloo/ordersvc/internal/storage/postgres"
	"github.com/polkiloo/ordersvc/internal/usecase"
	"github.com/polkiloo/ordersvc/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		cache.Module,
		kafka.Module,
		identity.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(
			func(client identity.Client) usecase.IdentityValidator { return client },
			func(client catalog.Client) usecase.CatalogValidator { return client },
			func(c *cache.RedisCache) usecase.OrderCache { return c },
			func(s *postgres.Storage) usecase.HealthChecker { return s },
			func(d *worker.Dispatcher) usecase.EventNotifier { return d },
			func(f *app.OrderFacade) handlers.ServiceFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
