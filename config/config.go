package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	AES       AESConfig       `mapstructure:"aes"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Events    EventsConfig    `mapstructure:"events"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=postgres memory"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type AdminConfig struct {
	APIKeyHash string `mapstructure:"api_key_hash"` // argon2id encoded hash of the admin key
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type TelemetryConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"` // empty disables export
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

// WebhookConfig controls endpoint registration and outbound delivery.
type WebhookConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	TimeoutMS         int           `mapstructure:"timeout_ms" validate:"min=1"`
	MaxAttempts       int           `mapstructure:"max_attempts" validate:"min=1"`
	RetryDelays       []int         `mapstructure:"retry_delays" validate:"min=1,dive,min=0"` // seconds
	SecretLength      int           `mapstructure:"secret_length" validate:"min=16"`
	SignatureHeader   string        `mapstructure:"signature_header" validate:"required"`
	Product           string        `mapstructure:"product" validate:"required"`
	FailureThreshold  int           `mapstructure:"failure_threshold" validate:"min=1"`
	AllowInsecureURLs bool          `mapstructure:"allow_insecure_urls"` // dev mode: http and localhost
	Concurrency       int           `mapstructure:"concurrency" validate:"min=1"`
	ResponseSnippet   int           `mapstructure:"response_snippet_bytes" validate:"min=0"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

// Timeout returns the per-request delivery timeout.
func (w WebhookConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutMS) * time.Millisecond
}

// Delays returns the retry schedule as durations.
func (w WebhookConfig) Delays() []time.Duration {
	out := make([]time.Duration, len(w.RetryDelays))
	for i, s := range w.RetryDelays {
		out[i] = time.Duration(s) * time.Second
	}
	return out
}

// UserAgent is sent on every outbound delivery.
func (w WebhookConfig) UserAgent() string {
	return w.Product + "-Webhook/1.0"
}

type SchedulerConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	QueueInterval     time.Duration `mapstructure:"queue_interval" validate:"gt=0"`
	RetryInterval     time.Duration `mapstructure:"retry_interval" validate:"gt=0"`
	QueueBatchSize    int           `mapstructure:"queue_batch_size" validate:"min=1"`
	RetryBatchSize    int           `mapstructure:"retry_batch_size" validate:"min=1"`
	PurgeCron         string        `mapstructure:"purge_cron" validate:"required"`
	RetentionDays     int           `mapstructure:"retention_days" validate:"min=1"`
	DistributedLock   bool          `mapstructure:"distributed_lock"`
	// SENDING rows untouched for this long are treated as interrupted.
	StaleSendingAfter time.Duration `mapstructure:"stale_sending_after" validate:"gt=0"`
}

type EventsConfig struct {
	AMQP AMQPConfig `mapstructure:"amqp"`
}

type AMQPConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url" validate:"required_if=Enabled true"`
	Exchange   string `mapstructure:"exchange"`
	Queue      string `mapstructure:"queue" validate:"required_if=Enabled true"`
	RoutingKey string `mapstructure:"routing_key"`
	Prefetch   int    `mapstructure:"prefetch"`
}

// Validate checks struct-level constraints after unmarshaling.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Scheduler.StaleSendingAfter <= c.Webhook.Timeout() {
		return fmt.Errorf("scheduler.stale_sending_after (%s) must exceed the webhook timeout (%s)",
			c.Scheduler.StaleSendingAfter, c.Webhook.Timeout())
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WHG_.
// Nested keys use underscore: WHG_DATABASE_HOST, WHG_WEBHOOK_MAX_ATTEMPTS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "webhook_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "webhook-gateway")
	v.SetDefault("aes.key", "")
	v.SetDefault("admin.api_key_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("telemetry.service_name", "webhook-gateway")
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.metrics_enabled", true)

	v.SetDefault("webhook.enabled", true)
	v.SetDefault("webhook.timeout_ms", 10000)
	v.SetDefault("webhook.max_attempts", 5)
	v.SetDefault("webhook.retry_delays", []int{60, 300, 900, 3600, 86400})
	v.SetDefault("webhook.secret_length", 32)
	v.SetDefault("webhook.signature_header", "X-Webhook-Signature")
	v.SetDefault("webhook.product", "WebhookGateway")
	v.SetDefault("webhook.failure_threshold", 10)
	v.SetDefault("webhook.allow_insecure_urls", false)
	v.SetDefault("webhook.concurrency", 10)
	v.SetDefault("webhook.response_snippet_bytes", 1024)
	v.SetDefault("webhook.cache_ttl", "5m")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.queue_interval", "10s")
	v.SetDefault("scheduler.retry_interval", "60s")
	v.SetDefault("scheduler.queue_batch_size", 10)
	v.SetDefault("scheduler.retry_batch_size", 50)
	v.SetDefault("scheduler.purge_cron", "0 3 * * *")
	v.SetDefault("scheduler.retention_days", 30)
	v.SetDefault("scheduler.distributed_lock", false)
	v.SetDefault("scheduler.stale_sending_after", "2m")

	v.SetDefault("events.amqp.enabled", false)
	v.SetDefault("events.amqp.url", "")
	v.SetDefault("events.amqp.exchange", "domain.events")
	v.SetDefault("events.amqp.queue", "webhook-gateway.events")
	v.SetDefault("events.amqp.routing_key", "#")
	v.SetDefault("events.amqp.prefetch", 20)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WHG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("WHG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
