package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Schema     SchemaConfig     `mapstructure:"schema"`
	Media      MediaConfig      `mapstructure:"media"`
	Minio      MinioConfig      `mapstructure:"minio"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Submission SubmissionConfig `mapstructure:"submission"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

type SchemaConfig struct {
	// Generation is "translations" or "json"
	Generation string `mapstructure:"generation"`
}

type MediaConfig struct {
	FrontendImageBaseURL string `mapstructure:"frontend_image_base_url"`
	ImageDir             string `mapstructure:"image_dir"`
	ImageSubdir          string `mapstructure:"image_subdir"`
	Backend              string `mapstructure:"backend"` // local | minio
	CacheMaxAge          int    `mapstructure:"cache_max_age"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty disables rate limiting
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SubmissionConfig struct {
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// Legacy flat environment names still honoured next to SECTION_KEY names
var legacyEnv = map[string]string{
	"server.port":                   "PORT",
	"database.url":                  "DATABASE_URL",
	"media.frontend_image_base_url": "FRONTEND_IMAGE_BASE_URL",
	"media.image_dir":               "IMAGE_DIR",
	"redis.addr":                    "REDIS_ADDR",
	"redis.password":                "REDIS_PASSWORD",
	"minio.endpoint":                "MINIO_ENDPOINT",
	"minio.access_key":              "MINIO_ACCESS_KEY",
	"minio.secret_key":              "MINIO_SECRET_KEY",
	"minio.use_ssl":                 "MINIO_USE_SSL",
	"minio.bucket":                  "MINIO_BUCKET",
}

// Load reads the optional YAML file at path, then the environment. An empty
// path means environment and defaults only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.command_timeout", "60s")
	v.SetDefault("schema.generation", "translations")
	v.SetDefault("media.frontend_image_base_url", "/screenshots")
	v.SetDefault("media.image_dir", "./screenshots")
	v.SetDefault("media.image_subdir", "toolify")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.cache_max_age", 3600)
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "screenshots")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("submission.rate_limit", 5)
	v.SetDefault("submission.rate_window", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.development", false)

	for key, legacy := range legacyEnv {
		envName := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, legacy); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	switch c.Schema.Generation {
	case "translations", "json":
	default:
		return fmt.Errorf("schema.generation must be translations or json, got %q", c.Schema.Generation)
	}
	switch c.Media.Backend {
	case "local":
	case "minio":
		if c.Minio.Endpoint == "" || c.Minio.Bucket == "" {
			return errors.New("minio.endpoint and minio.bucket are required for the minio media backend")
		}
	default:
		return fmt.Errorf("media.backend must be local or minio, got %q", c.Media.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
