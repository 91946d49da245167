package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/ordersvc/internal/adapter/identity"
	"github.com/polkiloo/ordersvc/internal/app"
	"github.com/polkiloo/ordersvc/internal/config"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
	"github.com/polkiloo/ordersvc/internal/events"
	"github.com/polkiloo/ordersvc/internal/storage/postgres"
	"github.com/polkiloo/ordersvc/internal/test"
	"github.com/polkiloo/ordersvc/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		UserServiceURL:    "http://users.local",
		ProductServiceURL: "http://products.local",
		RedisAddr:         "127.0.0.1:0",
		KafkaBrokers:      []string{"127.0.0.1:9092"},
		KafkaClientID:     "order-service",
		OrderCacheTTL:     time.Minute,
		ServiceTimeout:    time.Second,
		TxTimeout:         time.Second,
		PublishTimeout:    time.Second,
		PublishWorkers:    1,
		PublishQueueSize:  1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade   *app.OrderFacade
		notifier usecase.EventNotifier
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(test.NewOrderStore())),
			fx.Replace(identity.Client(&test.IdentityStub{})),
			fx.Replace(events.Publisher(&test.PublisherStub{})),
		),
		fx.Populate(&facade, &notifier),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected order facade instance")
	}
	if notifier == nil {
		t.Fatal("expected dispatcher to be wired as event notifier")
	}
}
