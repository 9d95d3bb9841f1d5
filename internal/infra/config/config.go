package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	SeedDemo  bool
}

type ServerConfig struct {
	Port            string
	StaticDir       string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level    string
	Encoding string
}

type HTTPConfig struct {
	AllowedOrigins []string
	MaxPerPage     int
}

// RateLimitConfig disables limiting when RPS is zero.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

var defaults = map[string]interface{}{
	"APP_PORT":             "8080",
	"STATIC_DIR":           "./static",
	"SHUTDOWN_TIMEOUT":     "10s",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "30m",
	"DB_AUTO_MIGRATE":      true,
	"LOG_LEVEL":            "info",
	"LOG_ENCODING":         "json",
	"CORS_ALLOWED_ORIGINS": "*",
	"MAX_PER_PAGE":         100,
	"RATE_LIMIT_RPS":       50,
	"RATE_LIMIT_BURST":     100,
	"SEED_DEMO_DATA":       false,
}

// Load reads an optional .env file, an optional YAML file named by
// CONFIG_FILE, and the process environment, in increasing priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("APP_PORT"),
			StaticDir:       v.GetString("STATIC_DIR"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MaxPerPage:     v.GetInt("MAX_PER_PAGE"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		SeedDemo: v.GetBool("SEED_DEMO_DATA"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.HTTP.MaxPerPage < 1 {
		return fmt.Errorf("MAX_PER_PAGE must be >= 1, got %d", c.HTTP.MaxPerPage)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *ServerConfig) Addr() string { return ":" + c.Port }

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
