package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
  Authentication service

  Usage:
    auth [flags]

  Flags:
    -config-path string   path to the YAML config file (default "config.yaml")
    -help                 print this message and exit

  Configuration is read from the YAML file and overridden by environment
  variables (SERVER_PORT, DATABASE_*, RABBITMQ_*, AUTH_*).
  AUTH_JWT_SECRET is required.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the loaded configuration without secret values.
func PrintConfig(cfg *Config) {
	fmt.Printf("server: port=%s log_level=%s\n", cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("database: host=%s port=%s user=%s database=%s migrate=%t\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database, cfg.Database.Migrate)
	fmt.Printf("rabbitmq: enabled=%t host=%s port=%s\n",
		cfg.RabbitMQ.Enabled, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Printf("auth: token_ttl=%s bcrypt_cost=%d jwt_secret=[redacted]\n",
		cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
}
