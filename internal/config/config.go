package config

import (
	"fmt"
	"time"

	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/config"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/database"
)

// Config holds all configuration for the shop server.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"shop"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Postgres database.PostgresConfig
	Redis    database.RedisConfig

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// SessionCartTTL bounds how long an anonymous session cart survives
	// in Redis without activity.
	SessionCartTTL time.Duration `env:"SESSION_CART_TTL" envDefault:"720h"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
