package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
	Audit AuditConfig
	HTTP  HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend string // memory or sqlite
	DSN     string // sqlite DSN when backend is sqlite
}

// AuditConfig holds audit trail settings
type AuditConfig struct {
	DefaultUser      string // acting user when the request carries none
	MaxSummaryFields int    // change clauses spelled out per summary
	RecentLimit      int    // default page size of the recent-activity feed
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
//  1. Environment variables with BUDGETING_ prefix
//  2. config.toml
//  3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BUDGETING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Store: StoreConfig{
			Backend: v.GetString("store.backend"),
			DSN:     v.GetString("store.dsn"),
		},
		Audit: AuditConfig{
			DefaultUser:      v.GetString("audit.default_user"),
			MaxSummaryFields: v.GetInt("audit.max_summary_fields"),
			RecentLimit:      v.GetInt("audit.recent_limit"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "budgeting")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.dsn", "budgeting.db")

	v.SetDefault("audit.default_user", "system")
	v.SetDefault("audit.max_summary_fields", 4)
	v.SetDefault("audit.recent_limit", 50)

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "sqlite" && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for the sqlite backend")
	}
	return nil
}
