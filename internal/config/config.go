package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// HTTP holds HTTP server configuration.
type HTTP struct {
	Host string
	Port int
}

// GRPC holds gRPC server configuration.
type GRPC struct {
	Host string
	Port int
}

// Cache configures caching behavior and backend selection.
type Cache struct {
	Enabled    bool
	Driver     string
	DefaultTTL time.Duration
	Redis      Redis
}

// Redis contains redis-specific connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Messaging configures the message bus used by the application.
type Messaging struct {
	Driver        string
	Enabled       bool
	Kafka         Kafka
	ConsumerGroup string
	Workers       Worker
}

// Kafka holds Kafka connection details.
type Kafka struct {
	Brokers        []string
	ClientID       string
	Topic          string
	CommitInterval time.Duration
	MinBytes       int
	MaxBytes       int
	ConnectTimeout time.Duration
}

// Worker configures background worker concurrency and polling.
type Worker struct {
	Enabled      bool
	PollInterval time.Duration
	Concurrency  int
}

// Seed controls how the seed command loads and applies seed data.
type Seed struct {
	File          string
	EnableLogging bool
	Strict        bool
}

// Database holds primary and read replica connection settings.
type Database struct {
	Driver          string
	WriterDSN       string
	ReaderDSN       string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
}

// Observability contains logging, tracing, and metrics configuration.
type Observability struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	LogEncoding     string
	EnableTracing   bool
	TraceExporter   string
	TraceEndpoint   string
	TraceInsecure   bool
	EnableMetrics   bool
	MetricsExporter string
	PrometheusPath  string
}

// Config wraps all application configuration knobs.
type Config struct {
	HTTP          HTTP
	GRPC          GRPC
	Cache         Cache
	Messaging     Messaging
	Database      Database
	Seed          Seed
	Observability Observability
}

// Module wires the configuration loader into the Fx graph.
var Module = fx.Provide(New)

// DefaultDatabaseFile is the SQLite file the service reads and seeds.
const DefaultDatabaseFile = "bid-entry-api.db"

var loadEnvOnce sync.Once

// New loads .env once and builds a Config from the process environment.
func New() (Config, error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
	return Load(os.LookupEnv)
}

// Load builds a Config from lookup, applying defaults for unset keys, then
// normalizes and validates every section.
func Load(lookup Lookup) (Config, error) {
	env := &envReader{lookup: lookup}

	cfg := Config{
		HTTP: HTTP{
			Host: env.str("HTTP_HOST", "0.0.0.0"),
			Port: env.integer("HTTP_PORT", 8080),
		},
		GRPC: GRPC{
			Host: env.str("GRPC_HOST", "0.0.0.0"),
			Port: env.integer("GRPC_PORT", 9090),
		},
		Cache: Cache{
			Enabled:    env.boolean("CACHE_ENABLED", false),
			Driver:     env.str("CACHE_DRIVER", "redis"),
			DefaultTTL: env.duration("CACHE_DEFAULT_TTL", 5*time.Minute),
			Redis: Redis{
				Addr:     env.str("REDIS_ADDR", "127.0.0.1:6379"),
				Password: env.str("REDIS_PASSWORD", ""),
				DB:       env.integer("REDIS_DB", 0),
			},
		},
		Messaging: Messaging{
			Driver:  env.str("MESSAGING_DRIVER", "kafka"),
			Enabled: env.boolean("MESSAGING_ENABLED", false),
			Kafka: Kafka{
				Brokers:        env.list("KAFKA_BROKERS", []string{"127.0.0.1:9092"}),
				ClientID:       env.str("KAFKA_CLIENT_ID", "bidentry-service"),
				Topic:          env.str("KAFKA_TOPIC", "bidentry.events"),
				CommitInterval: env.duration("KAFKA_COMMIT_INTERVAL", time.Second),
				MinBytes:       env.integer("KAFKA_MIN_BYTES", 10e3),
				MaxBytes:       env.integer("KAFKA_MAX_BYTES", 10e6),
				ConnectTimeout: env.duration("KAFKA_CONNECT_TIMEOUT", 5*time.Second),
			},
			ConsumerGroup: env.str("KAFKA_CONSUMER_GROUP", "bidentry-worker"),
			Workers: Worker{
				Enabled:      env.boolean("WORKER_ENABLED", true),
				PollInterval: env.duration("WORKER_POLL_INTERVAL", time.Second),
				Concurrency:  env.integer("WORKER_CONCURRENCY", 4),
			},
		},
		Database: Database{
			Driver:          env.str("DB_DRIVER", "sqlite"),
			WriterDSN:       env.str("DB_WRITER_DSN", DefaultDatabaseFile),
			ReaderDSN:       env.str("DB_READER_DSN", ""),
			MaxOpenConns:    env.integer("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    env.integer("DB_MAX_IDLE_CONNS", 25),
			MaxConnLifetime: env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		},
		Seed: Seed{
			File:          env.str("SEED_FILE", ""),
			EnableLogging: env.boolean("SEED_LOGGING", true),
			Strict:        env.boolean("SEED_STRICT", false),
		},
		Observability: Observability{
			ServiceName:     env.str("OBS_SERVICE_NAME", "bidentry"),
			Environment:     env.str("OBS_ENVIRONMENT", "local"),
			LogLevel:        env.str("OBS_LOG_LEVEL", "info"),
			LogEncoding:     env.str("OBS_LOG_ENCODING", "json"),
			EnableTracing:   env.boolean("OBS_ENABLE_TRACING", false),
			TraceExporter:   env.str("OBS_TRACE_EXPORTER", "stdout"),
			TraceEndpoint:   env.str("OBS_OTLP_ENDPOINT", "localhost:4317"),
			TraceInsecure:   env.boolean("OBS_OTLP_INSECURE", true),
			EnableMetrics:   env.boolean("OBS_ENABLE_METRICS", true),
			MetricsExporter: env.str("OBS_METRICS_EXPORTER", "prometheus"),
			PrometheusPath:  env.str("OBS_PROMETHEUS_PATH", "/metrics"),
		},
	}

	if err := env.err(); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.GRPC.Port <= 0 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPC.Port)
	}
	for _, step := range []func() error{
		c.Database.normalize,
		c.Cache.normalize,
		c.Messaging.normalize,
		c.Observability.normalize,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) normalize() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case "sqlite3":
		d.Driver = "sqlite"
	case "pg", "postgresql":
		d.Driver = "postgres"
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %s", d.Driver)
	}

	if d.WriterDSN == "" {
		return errors.New("missing DB_WRITER_DSN")
	}
	if d.ReaderDSN == "" {
		d.ReaderDSN = d.WriterDSN
	}
	return nil
}

func (c *Cache) normalize() error {
	if !c.Enabled {
		c.Driver = "noop"
	}
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))

	switch c.Driver {
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("missing REDIS_ADDR for redis cache")
		}
	case "memory", "noop":
	default:
		return fmt.Errorf("unsupported cache driver: %s", c.Driver)
	}

	if c.DefaultTTL < 0 {
		c.DefaultTTL = 5 * time.Minute
	}
	return nil
}

func (m *Messaging) normalize() error {
	if !m.Enabled {
		m.Driver = "noop"
	}

	switch m.Driver {
	case "kafka":
		if len(m.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS must be provided")
		}
		if m.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC must be provided")
		}
		if m.ConsumerGroup == "" {
			return errors.New("KAFKA_CONSUMER_GROUP must be provided")
		}
	case "noop":
	default:
		return fmt.Errorf("unsupported messaging driver: %s", m.Driver)
	}

	if m.Workers.Concurrency <= 0 {
		m.Workers.Concurrency = 1
	}
	if m.Workers.PollInterval <= 0 {
		m.Workers.PollInterval = time.Second
	}
	return nil
}

func (o *Observability) normalize() error {
	o.LogLevel = lowerOr(o.LogLevel, "info")
	o.LogEncoding = lowerOr(o.LogEncoding, "json")
	o.TraceExporter = lowerOr(o.TraceExporter, "stdout")
	o.MetricsExporter = lowerOr(o.MetricsExporter, "prometheus")

	if o.PrometheusPath == "" {
		o.PrometheusPath = "/metrics"
	} else if !strings.HasPrefix(o.PrometheusPath, "/") {
		o.PrometheusPath = "/" + o.PrometheusPath
	}
	return nil
}

func lowerOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
