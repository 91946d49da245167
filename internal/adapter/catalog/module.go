package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/config"
)

// Module exposes the catalog client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ProductServiceURL, p.Config.ServiceTimeout, p.Logger)
}
