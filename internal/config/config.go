package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Провайдеры identity и платежей
const (
	AuthProviderJWT    = "jwt"
	AuthProviderRemote = "remote"

	PaymentProviderMock   = "mock"
	PaymentProviderStripe = "stripe"
)

// ErrInvalidConfig конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Database   DatabaseConfig   `toml:"database"`
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Payments   PaymentsConfig   `toml:"payments"`
	Reconciler ReconcilerConfig `toml:"reconciler"`
	Booking    BookingConfig    `toml:"booking"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// AuthConfig настройки проверки bearer токенов
type AuthConfig struct {
	Provider  string `toml:"provider"` // jwt | remote
	JWTSecret string `toml:"jwt_secret"`
	URL       string `toml:"url"`
	APIKey    string `toml:"api_key"`
	Timeout   int    `toml:"timeout"` // секунды
}

// RedisConfig кэш списка парковок
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	ListTTL  int    `toml:"list_ttl"` // секунды
}

// KafkaConfig публикация событий бронирований
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// PaymentsConfig платёжный шлюз
type PaymentsConfig struct {
	Provider            string `toml:"provider"` // mock | stripe
	Currency            string `toml:"currency"`
	StripeSecretKey     string `toml:"stripe_secret_key"`
	StripePaymentMethod string `toml:"stripe_payment_method"`
}

// ReconcilerConfig синхронизация кэша занятости
type ReconcilerConfig struct {
	MaxRetries    int `toml:"max_retries"`
	Timeout       int `toml:"timeout"`        // секунды на одну синхронизацию
	SweepInterval int `toml:"sweep_interval"` // секунды, 0 - периодическая сверка выключена
}

// BookingConfig ограничения бронирования
type BookingConfig struct {
	MaxDurationHours int `toml:"max_duration_hours"`
}

// ReconcileTimeout таймаут одной фоновой синхронизации
func (r ReconcilerConfig) ReconcileTimeout() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// SweepEvery интервал периодической сверки
func (r ReconcilerConfig) SweepEvery() time.Duration {
	return time.Duration(r.SweepInterval) * time.Second
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "parking-service"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Auth.Provider == "" {
		c.Auth.Provider = AuthProviderJWT
	}
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = 5
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.ListTTL == 0 {
		c.Redis.ListTTL = 30
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "parking.bookings"
	}

	if c.Payments.Provider == "" {
		c.Payments.Provider = PaymentProviderMock
	}
	if c.Payments.Currency == "" {
		c.Payments.Currency = "INR"
	}

	if c.Reconciler.MaxRetries == 0 {
		c.Reconciler.MaxRetries = 3
	}
	if c.Reconciler.Timeout == 0 {
		c.Reconciler.Timeout = 10
	}

	if c.Booking.MaxDurationHours == 0 {
		c.Booking.MaxDurationHours = 24
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}

	switch c.Auth.Provider {
	case AuthProviderJWT:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, "auth.jwt_secret is required for the jwt provider")
		}
	case AuthProviderRemote:
		if c.Auth.URL == "" {
			errs = append(errs, "auth.url is required for the remote provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("auth.provider %q is not supported", c.Auth.Provider))
	}

	switch c.Payments.Provider {
	case PaymentProviderMock:
	case PaymentProviderStripe:
		if c.Payments.StripeSecretKey == "" {
			errs = append(errs, "payments.stripe_secret_key is required for the stripe provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("payments.provider %q is not supported", c.Payments.Provider))
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, "kafka.brokers is required when kafka is enabled")
	}
	if c.Reconciler.MaxRetries < 0 {
		errs = append(errs, "reconciler.max_retries must not be negative")
	}
	if c.Reconciler.SweepInterval < 0 {
		errs = append(errs, "reconciler.sweep_interval must not be negative")
	}
	if c.Booking.MaxDurationHours < 0 {
		errs = append(errs, "booking.max_duration_hours must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
