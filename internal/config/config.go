package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	UserServiceURL     string
	ProductServiceURL  string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KafkaBrokers       []string
	KafkaClientID      string
	OrderCacheTTL      time.Duration
	ServiceTimeout     time.Duration
	TxTimeout          time.Duration
	PublishTimeout     time.Duration
	PublishWorkers     int
	PublishQueueSize   int
	StrictTransitions  bool
	ParallelValidation bool
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress       = ":3003"
	defaultRedisAddr        = "localhost:6379"
	defaultKafkaBrokers     = "localhost:9092"
	defaultKafkaClientID    = "order-service"
	defaultOrderCacheTTL    = 30 * time.Minute
	defaultServiceTimeout   = 5 * time.Second
	defaultTxTimeout        = 10 * time.Second
	defaultPublishTimeout   = 5 * time.Second
	defaultPublishWorkers   = 2
	defaultPublishQueueSize = 256
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		UserServiceURL:     getString(lookup, "USER_SERVICE_URL", ""),
		ProductServiceURL:  getString(lookup, "PRODUCT_SERVICE_URL", ""),
		RedisAddr:          getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:      getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:            getInt(lookup, "REDIS_DB", 0),
		KafkaClientID:      getString(lookup, "KAFKA_CLIENT_ID", defaultKafkaClientID),
		OrderCacheTTL:      getDuration(lookup, "ORDER_CACHE_TTL", defaultOrderCacheTTL),
		ServiceTimeout:     getDuration(lookup, "SERVICE_TIMEOUT", defaultServiceTimeout),
		TxTimeout:          getDuration(lookup, "TX_TIMEOUT", defaultTxTimeout),
		PublishTimeout:     getDuration(lookup, "PUBLISH_TIMEOUT", defaultPublishTimeout),
		PublishWorkers:     getInt(lookup, "PUBLISH_WORKERS", defaultPublishWorkers),
		PublishQueueSize:   getInt(lookup, "PUBLISH_QUEUE_SIZE", defaultPublishQueueSize),
		StrictTransitions:  getBool(lookup, "STRICT_TRANSITIONS", false),
		ParallelValidation: getBool(lookup, "PARALLEL_VALIDATION", false),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ordersvc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		kafkaBrokersStr    = getString(lookup, "KAFKA_BROKERS", defaultKafkaBrokers)
		logLevelStr        = getString(lookup, "LOG_LEVEL", "info")
		cacheTTLStr        = cfg.OrderCacheTTL.String()
		serviceTimeoutStr  = cfg.ServiceTimeout.String()
		txTimeoutStr       = cfg.TxTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.UserServiceURL, "user-service", cfg.UserServiceURL, "Identity service base URL")
	fs.StringVar(&cfg.ProductServiceURL, "product-service", cfg.ProductServiceURL, "Catalog service base URL")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.StringVar(&kafkaBrokersStr, "kafka-brokers", kafkaBrokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Order cache TTL")
	fs.StringVar(&serviceTimeoutStr, "service-timeout", serviceTimeoutStr, "Timeout for identity and catalog calls")
	fs.StringVar(&txTimeoutStr, "tx-timeout", txTimeoutStr, "Timeout for database transactions")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.PublishWorkers, "publish-workers", cfg.PublishWorkers, "Number of event publishing workers")
	fs.BoolVar(&cfg.StrictTransitions, "strict-transitions", cfg.StrictTransitions, "Enforce the status transition table on status updates")
	fs.BoolVar(&cfg.ParallelValidation, "parallel-validation", cfg.ParallelValidation, "Validate order items against the catalog concurrently")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.ServiceTimeout, err = time.ParseDuration(serviceTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid service timeout: %w", err)
	}

	if cfg.TxTimeout, err = time.ParseDuration(txTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid tx timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.KafkaBrokers = splitList(kafkaBrokersStr)

	if cfg.OrderCacheTTL <= 0 {
		cfg.OrderCacheTTL = defaultOrderCacheTTL
	}

	if cfg.ServiceTimeout <= 0 {
		cfg.ServiceTimeout = defaultServiceTimeout
	}

	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = defaultTxTimeout
	}

	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}

	if cfg.PublishWorkers <= 0 {
		cfg.PublishWorkers = defaultPublishWorkers
	}

	if cfg.PublishQueueSize <= 0 {
		cfg.PublishQueueSize = defaultPublishQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.UserServiceURL == "" {
		return nil, fmt.Errorf("user service URL must be provided")
	}

	if cfg.ProductServiceURL == "" {
		return nil, fmt.Errorf("product service URL must be provided")
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
