// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file; .env files never
// override variables already set by the runtime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type UpstreamConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
	RPS        float64       `yaml:"rps"`
	MaxRetries int           `yaml:"max_retries"`
}

type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
	EnableHSTS     bool     `yaml:"enable_hsts"`
}

type Config struct {
	HTTP        HTTPConfig     `yaml:"http"`
	Upstream    UpstreamConfig `yaml:"upstream"`
	Cache       CacheConfig    `yaml:"cache"`
	DatabaseDSN string         `yaml:"database_dsn"`
	LogLevel    string         `yaml:"log_level"`
	LogJSON     bool           `yaml:"log_json"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:           ":8080",
			RateLimitRPS:   5,
			RateLimitBurst: 10,
			MaxBodyBytes:   64 << 10,
		},
		Upstream: UpstreamConfig{
			BaseURL:    "https://www.googleapis.com/books/v1",
			UserAgent:  "bookrec/1.0",
			Timeout:    10 * time.Second,
			RPS:        5,
			MaxRetries: 2,
		},
		Cache: CacheConfig{
			Size: 1000,
			TTL:  10 * time.Minute,
		},
		LogLevel: "info",
	}
}

// LoadEnvFiles reads .env and .env.local without overriding the environment
// provided by the runtime (e.g. Docker).
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration: defaults, then the YAML file named by
// BOOKREC_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("BOOKREC_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.HTTP.Addr, "APP_ADDR")
	setString(&c.DatabaseDSN, "DB_DSN")
	setString(&c.Upstream.BaseURL, "GOOGLE_BOOKS_BASE_URL")
	setString(&c.Upstream.APIKey, "GOOGLE_BOOKS_API_KEY")
	setString(&c.Upstream.UserAgent, "UPSTREAM_USER_AGENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.HTTP.AllowedOrigins = strings.Split(v, ",")
	}

	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	collect(setDuration(&c.Upstream.Timeout, "UPSTREAM_TIMEOUT"))
	collect(setFloat(&c.Upstream.RPS, "UPSTREAM_RPS"))
	collect(setInt(&c.Upstream.MaxRetries, "UPSTREAM_MAX_RETRIES"))
	collect(setDuration(&c.Cache.TTL, "CACHE_TTL"))
	collect(setInt(&c.Cache.Size, "CACHE_SIZE"))
	collect(setFloat(&c.HTTP.RateLimitRPS, "RATE_LIMIT_RPS"))
	collect(setInt(&c.HTTP.RateLimitBurst, "RATE_LIMIT_BURST"))
	collect(setBool(&c.HTTP.EnableHSTS, "ENABLE_HSTS"))
	collect(setBool(&c.LogJSON, "LOG_JSON"))

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
