package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Server.LogLevel = "INFO"
	cfg.Auth.JWTSecret = "secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = 12
	return cfg
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := NewConfig("")
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Fatalf("default port = %q", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "INFO" {
		t.Fatalf("default log level = %q", cfg.Server.LogLevel)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("default token ttl = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("default bcrypt cost = %d", cfg.Auth.BcryptCost)
	}
	if cfg.RabbitMQ.Enabled {
		t.Fatal("rabbitmq must be disabled by default")
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := validConfig()
	cfg.Auth.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty secret")
	}

	cfg = validConfig()
	cfg.Auth.TokenTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero TTL")
	}

	cfg = validConfig()
	cfg.Auth.BcryptCost = 99
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range bcrypt cost")
	}

	cfg = validConfig()
	cfg.Server.LogLevel = "LOUD"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Database: "auth",
		MaxConns: 20, MinConns: 2,
		MaxConnLifetime: 30 * time.Minute, MaxConnIdleTime: 5 * time.Minute,
	}

	dsn := cfg.GetDSN()
	for _, want := range []string{"postgres://u:p@db:5432/auth", "pool_max_conns=20", "pool_min_conns=2"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}

	if strings.Contains(cfg.GetMigrateDSN(), "pool_max_conns") {
		t.Fatal("migrate DSN must not carry pgxpool options")
	}
}
