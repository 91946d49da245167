package identity

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/config"
)

// Module exposes the identity client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.UserServiceURL, p.Config.ServiceTimeout, p.Logger)
}
