package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/config"
)

// Module provides the order use cases to the fx container.
var Module = fx.Provide(
	newOptions,
	NewOrderUseCase,
	NewStatusMachine,
	NewQueryUseCase,
)

func newOptions(cfg *config.Config) Options {
	return Options{
		ParallelValidation: cfg.ParallelValidation,
		StrictTransitions:  cfg.StrictTransitions,
		CacheTTL:           cfg.OrderCacheTTL,
	}
}
