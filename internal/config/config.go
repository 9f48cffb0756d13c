package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	// Driver selects the gorm driver: "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// DSN is a file path for sqlite or a key=value DSN for postgres.
	DSN string `mapstructure:"dsn"`
}

type SessionConfig struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// TTL returns the session token lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// Load reads configuration from defaults, an optional yaml file and
// EVENTCAL_* environment variables, in increasing priority. A .env file in
// the working directory is loaded first so that container-style deployments
// and local runs share the same variable names.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("http.port", "8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "events.db")
	viper.SetDefault("session.secret", "dev-secret-change-me")
	viper.SetDefault("session.ttl_hours", 720)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("EVENTCAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return &cfg, nil
}
