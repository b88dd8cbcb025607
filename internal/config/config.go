// Package config loads the service configuration from the environment.
//
// Variables use the TASKFORM_ prefix and a double underscore for nesting:
// TASKFORM_SERVER__PORT maps to server.port. A `.env` file in the working
// directory is loaded first when present.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment on import.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/deppfellow/taskform/internal/i18n"
)

const (
	EnvPrefix   = "TASKFORM_"
	ServiceName = "taskform"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	App           AppConfig            `koanf:"app"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are in seconds. RateLimit is requests per second per
// client IP on the task submission route.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          float64  `koanf:"rate_limit" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig.Address is "host:port". Redis backs the email job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig holds the Clerk secret key guarding the task listing route.
// Leaving it empty disables that route.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key"`
}

type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	MailFrom     string `koanf:"mail_from" validate:"required"`
}

// AppConfig.Locale selects the display language of validation messages.
type AppConfig struct {
	Locale string `koanf:"locale"`
}

// DefaultRateLimit is used when server.rate_limit is unset.
const DefaultRateLimit = 5

// listKeys are split on commas so they unmarshal into slices.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envKeyValue maps TASKFORM_SERVER__RATE_LIMIT to server.rate_limit.
func envKeyValue(name, value string) (string, interface{}) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig reads the environment into a Config, validates it and fills
// defaults for optional blocks.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.App.Locale == "" {
		mainConfig.App.Locale = i18n.DefaultLocale
	}
	if _, err := i18n.NewMessages(mainConfig.App.Locale); err != nil {
		return nil, fmt.Errorf("invalid app locale: %w", err)
	}

	if mainConfig.Server.RateLimit == 0 {
		mainConfig.Server.RateLimit = DefaultRateLimit
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Telemetry is always labelled with the service name and primary env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}
