// Package config loads fitlog's settings from defaults, an optional YAML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/saadjs/fitlog/internal/app"
)

const (
	DefaultPort          = 3001
	DefaultFitbitTimeout = 10 * time.Second
	maxConfigFileSize    = 1024 * 1024
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Data   DataConfig   `koanf:"data"`
	Log    LogConfig    `koanf:"log"`
	Fitbit FitbitConfig `koanf:"fitbit"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	CORSOrigins     string        `koanf:"cors_origins"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DataConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type FitbitConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	RedirectURI  string        `koanf:"redirect_uri"`
	Timeout      time.Duration `koanf:"timeout"`
}

// envKeys maps the supported environment variables to config keys.
var envKeys = map[string]string{
	"PORT":                 "server.port",
	"CORS_ORIGINS":         "server.cors_origins",
	"DATA_DIR":             "data.dir",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
	"FITBIT_CLIENT_ID":     "fitbit.client_id",
	"FITBIT_CLIENT_SECRET": "fitbit.client_secret",
	"FITBIT_REDIRECT_URI":  "fitbit.redirect_uri",
	"FITBIT_TIMEOUT":       "fitbit.timeout",
}

// Load resolves configuration with precedence env > YAML file > defaults.
// A .env file in the working directory is read into the environment first
// without overriding variables that are already set. configPath may be empty.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if strings.TrimSpace(configPath) != "" {
		content, err := readConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return content, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if strings.TrimSpace(cfg.Server.CORSOrigins) == "" {
		cfg.Server.CORSOrigins = "*"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Fitbit.Timeout == 0 {
		cfg.Fitbit.Timeout = DefaultFitbitTimeout
	}
	if strings.TrimSpace(cfg.Data.Dir) == "" {
		dir, err := app.DefaultDataDir()
		if err != nil {
			return err
		}
		cfg.Data.Dir = dir
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Fitbit.Timeout <= 0 {
		return fmt.Errorf("fitbit timeout must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// FitbitConfigured reports whether all three OAuth client settings are present.
func (c *Config) FitbitConfigured() bool {
	return c.Fitbit.ClientID != "" && c.Fitbit.ClientSecret != "" && c.Fitbit.RedirectURI != ""
}

// Origins splits the comma-separated CORS origin list.
func (c *Config) Origins() []string {
	out := []string{}
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Paths() app.Paths {
	return app.Paths{Dir: c.Data.Dir}
}
