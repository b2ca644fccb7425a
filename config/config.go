package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/easygen/auth-service/pkg/configparser"
	"github.com/easygen/auth-service/pkg/logger"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server   ServerConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Auth     Auth
	}

	ServerConfig struct {
		Port     string `env:"SERVER_PORT" default:"3000"`
		LogLevel string `env:"SERVER_LOG_LEVEL" default:"INFO"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"auth_user"`
		Password string `env:"DATABASE_PASSWORD" default:"auth_pass"`
		Database string `env:"DATABASE_DATABASE" default:"auth_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`

		Migrate bool `env:"DATABASE_MIGRATE" default:"true"`
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`

		Enabled bool `env:"RABBITMQ_ENABLED" default:"false"`
	}

	Auth struct {
		JWTSecret  string        `env:"AUTH_JWT_SECRET"`
		TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" default:"1h"`
		BcryptCost int           `env:"AUTH_BCRYPT_COST" default:"12"`
	}
)

// GetDSN builds a pgx connection string. Pool sizing travels in the DSN so
// pgxpool.ParseConfig picks it up.
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&pool_max_conns=%d&pool_min_conns=%d&pool_max_conn_lifetime=%s&pool_max_conn_idle_time=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.MaxConns,
		c.MinConns,
		c.MaxConnLifetime,
		c.MaxConnIdleTime,
	)
}

// GetMigrateDSN is the plain URL without pgxpool options, for golang-migrate.
func (c DatabaseConfig) GetMigrateDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks values the application cannot run without.
func (c *Config) Validate() error {
	if !logger.ValidateLogLevel(c.Server.LogLevel) {
		return fmt.Errorf("SERVER_LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.Server.LogLevel)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}
	return nil
}
