package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fracshare/rwaledger/internal/domain"
)

// Config is the full service configuration, loaded from an optional yaml file
// with environment variable overrides (prefix RWALEDGER).
type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServiceConfig identifies the running service instance.
type ServiceConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig seeds bootstrap admin identities so a fresh process has an
// admin able to approve the first registrations.
type AuthConfig struct {
	AdminIDs []string `mapstructure:"admin_ids"`
}

// LogConfig controls log output. If File is set, output rotates there
// instead of going to stderr.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RateLimitConfig controls the per-instance request rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from the given file (optional) and environment
// variables, then applies defaults.
func Load(configPath, envPrefix string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine; env and defaults cover it.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
				return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if _, err := cfg.AdminIdentities(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error. Useful in main() where
// configuration errors should be fatal.
func MustLoad(configPath, envPrefix string) *Config {
	cfg, err := Load(configPath, envPrefix)
	if err != nil {
		panic(err)
	}
	return cfg
}

// AdminIdentities parses the configured bootstrap admin ids.
func (c *Config) AdminIdentities() ([]domain.Identity, error) {
	out := make([]domain.Identity, 0, len(c.Auth.AdminIDs))
	for _, raw := range c.Auth.AdminIDs {
		id, err := domain.ParseIdentity(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", raw, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// setDefaults registers every key with viper so environment overrides bind
// even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "rwaledger")
	v.SetDefault("service.env", "development")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("auth.admin_ids", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)
}
