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
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ConfigPathEnvVar = "CONFIG_PATH"
)

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Mongo    MongoConfig    `koanf:"mongo"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
	Feed     FeedConfig     `koanf:"feed"`
	Fanout   FanoutConfig   `koanf:"fanout"`
	Category CategoryConfig `koanf:"category"`
	Content  ContentConfig  `koanf:"content"`
}

type ServerConfig struct {
	Port           string        `koanf:"port"`
	Env            string        `koanf:"env"`
	CORSOrigins    string        `koanf:"cors_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	AuthRateLimit  int           `koanf:"auth_rate_limit"`
}

type MongoConfig struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	ExpiresIn time.Duration `koanf:"expires_in"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type FeedConfig struct {
	DefaultLimit int64 `koanf:"default_limit"`
	MaxLimit     int64 `koanf:"max_limit"`
}

type FanoutConfig struct {
	BatchSize int `koanf:"batch_size"`
}

type CategoryConfig struct {
	CommunitySlug string `koanf:"community_slug"`
}

type ContentConfig struct {
	// ExtraBannedWords is a comma-separated list added to utils.DefaultBannedWords.
	ExtraBannedWords string `koanf:"extra_banned_words"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8000",
			Env:            EnvDevelopment,
			CORSOrigins:    "*",
			RequestTimeout: 5 * time.Second,
			AuthRateLimit:  20,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "reviewio",
		},
		Auth: AuthConfig{ExpiresIn: 72 * time.Hour},
		Log:  LogConfig{Level: "info", Format: "json"},
		Feed: FeedConfig{DefaultLimit: 5, MaxLimit: 50},
		Fanout: FanoutConfig{
			BatchSize: 100,
		},
		Category: CategoryConfig{CommunitySlug: "community"},
	}
}

// LoadConfig reads .env if present, then layers struct defaults, an optional
// YAML file and the process environment, in that order.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envMappings = map[string]string{
	"port":               "server.port",
	"app_env":            "server.env",
	"cors_origins":       "server.cors_origins",
	"request_timeout":    "server.request_timeout",
	"auth_rate_limit":    "server.auth_rate_limit",
	"mongo_uri":          "mongo.uri",
	"mongo_db":           "mongo.database",
	"jwt_secret":         "auth.jwt_secret",
	"jwt_expires_in":     "auth.expires_in",
	"log_level":          "log.level",
	"log_format":         "log.format",
	"feed_default_limit": "feed.default_limit",
	"feed_max_limit":     "feed.max_limit",
	"fanout_batch_size":  "fanout.batch_size",
	"community_slug":     "category.community_slug",
	"profanity_words":    "content.extra_banned_words",
}

// envTransformFunc maps known variables to config keys and drops the rest.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Server.Env != EnvDevelopment && c.Server.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("APP_ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Server.Env))
	}
	if c.Feed.DefaultLimit < 1 || c.Feed.MaxLimit < c.Feed.DefaultLimit {
		errs = append(errs, fmt.Errorf("feed limits out of range: default=%d max=%d", c.Feed.DefaultLimit, c.Feed.MaxLimit))
	}
	if c.Fanout.BatchSize < 1 {
		errs = append(errs, errors.New("FANOUT_BATCH_SIZE must be positive"))
	}
	if c.Category.CommunitySlug == "" {
		errs = append(errs, errors.New("COMMUNITY_SLUG must not be empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.Server.Env == EnvProduction }
