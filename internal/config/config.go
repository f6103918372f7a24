// Package config loads moodreel settings from defaults, an optional YAML
// file and MOODREEL_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	History   HistoryConfig   `koanf:"history"`
	Similar   SimilarConfig   `koanf:"similar"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type CatalogConfig struct {
	Path           string `koanf:"path" validate:"required"`
	DeriveTrailers bool   `koanf:"derive_trailers"`
}

type RecommendConfig struct {
	DefaultTopN int `koanf:"default_top_n" validate:"min=1"`
	MaxTopN     int `koanf:"max_top_n" validate:"gtefield=DefaultTopN"`
}

type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
	CORSOrigins []string      `koanf:"cors_origins"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type HistoryConfig struct {
	Driver string `koanf:"driver" validate:"oneof=memory sqlite"`
	DSN    string `koanf:"dsn" validate:"required_if=Driver sqlite"`
	Limit  int    `koanf:"limit" validate:"min=0"`
}

type SimilarConfig struct {
	Enabled    bool   `koanf:"enabled"`
	IndexPath  string `koanf:"index_path"`
	Neighbours int    `koanf:"neighbours" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// EnvPrefix marks environment variables read by Load.
const EnvPrefix = "MOODREEL_"

// PathEnvVar overrides the config file location.
const PathEnvVar = "MOODREEL_CONFIG"

// DefaultPaths are searched in order when no explicit path is given.
var DefaultPaths = []string{"moodreel.yaml", "moodreel.yml", "/etc/moodreel/config.yaml"}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:           "data/movies_with_posters.csv",
			DeriveTrailers: true,
		},
		Recommend: RecommendConfig{
			DefaultTopN: 5,
			MaxTopN:     50,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			ReadTimeout: 10 * time.Second,
			CORSOrigins: []string{"*"},
		},
		History: HistoryConfig{
			Driver: "memory",
			DSN:    "moodreel-history.db",
			Limit:  50,
		},
		Similar: SimilarConfig{
			Enabled:    true,
			Neighbours: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load merges defaults, the config file at path (or the first of
// DefaultPaths that exists) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// comma separated lists from the environment
	if v, ok := k.Get("server.cors_origins").(string); ok {
		if err := k.Set("server.cors_origins", splitList(v)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// envKey maps MOODREEL_SERVER_READ_TIMEOUT to server.read_timeout. The first
// underscore after the prefix separates the section from the field.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "config" {
		return ""
	}
	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
