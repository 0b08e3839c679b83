package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Secret key for signing admin tokens. Leave empty to run the
	// reset endpoint unguarded (a startup warning is logged).
	Secret string `mapstructure:"secret"`
	// TTL for admin tokens in minutes
	TokenTTL uint `mapstructure:"token_ttl"`

	LogLevel string `mapstructure:"log_level"`

	// IANA name of the civil timezone used for the one-vote-per-day
	// rule, e.g. America/Sao_Paulo.
	Timezone string `mapstructure:"timezone"`

	// Address for the HTTP server, e.g. :5000
	ListenAddr string `mapstructure:"listen_addr"`

	// Per-request deadline in seconds. Store operations inherit it
	// through the request context.
	RequestTimeout uint `mapstructure:"request_timeout"`

	Storage Storage `mapstructure:"storage"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from environment variables and returns a Config struct.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	// A config file is optional; environment variables and defaults
	// are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %v", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	// Convert relative sqlite path to absolute instance folder
	if cfg.Storage.SQLite != nil {
		if cfg.Storage.SQLite.Path == ":memory:" {
			// In-memory database, do nothing
		} else if !os.IsPathSeparator(cfg.Storage.SQLite.Path[0]) {
			cfg.Storage.SQLite.Path = fmt.Sprintf("%s/%s", getConfigPath(), cfg.Storage.SQLite.Path)
		}
	}

	// Warn if secret is missing - without it the reset endpoint has no
	// access control.
	if cfg.Secret == "" {
		slog.Warn("Secret is not set. /api/reset-timer is open to anyone.")
	}

	return &cfg, nil
}
