package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/ordersvc/internal/config"
)

const serviceName = "order-service"

// New creates a preconfigured slog.Logger tagged with the service name.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.LogLevel)
}

func newWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", serviceName))
}
