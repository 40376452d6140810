// Package config manages client configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/afawcett/flowextensions/pkg/api"
)

// Record source backends
const (
	RecordSourceEngine = "engine"
	RecordSourceRedis  = "redis"
	RecordSourceSQLite = "sqlite"
)

// Default configuration values
const (
	DefaultEngineURL      = "http://localhost:8080"
	DefaultRequestTimeout = 30 * api.Second
	DefaultLogLevel       = "info"
	DefaultRecordSource   = RecordSourceEngine
	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPrefix    = "flowext:"
	DefaultSQLitePath     = "flowext.db"

	MaxRequestTimeout = 10 * api.Minute
)

// Error messages
var (
	ErrEngineURLEmpty        = errors.New("engine URL cannot be empty")
	ErrInvalidRequestTimeout = errors.New("request timeout out of range")
	ErrInvalidRecordSource   = errors.New("invalid record source")
	ErrRedisAddrEmpty        = errors.New("redis address cannot be empty")
	ErrSQLitePathEmpty       = errors.New("sqlite path cannot be empty")
	ErrInvalidEnvValue       = errors.New("invalid environment value")
)

// Config holds the settings for connecting to the hosted engine and for
// the optional local record stores. RequestTimeout is in milliseconds
type Config struct {
	EngineURL      string
	LogLevel       string
	RecordSource   string
	RedisAddr      string
	RedisPassword  string
	RedisPrefix    string
	SQLitePath     string
	RequestTimeout int64
	RedisDB        int
}

// NewDefaultConfig returns a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		EngineURL:      DefaultEngineURL,
		LogLevel:       DefaultLogLevel,
		RecordSource:   DefaultRecordSource,
		RedisAddr:      DefaultRedisAddr,
		RedisPrefix:    DefaultRedisPrefix,
		SQLitePath:     DefaultSQLitePath,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// LoadFromEnv populates the configuration from environment variables,
// leaving current values in place when a variable is unset
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("FLOW_ENGINE_URL"); v != "" {
		c.EngineURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("RECORD_SOURCE"); v != "" {
		c.RecordSource = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("REDIS_PREFIX"); v != "" {
		c.RedisPrefix = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}

	if err := loadEnvInt(
		"FLOW_REQUEST_TIMEOUT", &c.RequestTimeout, 1, MaxRequestTimeout,
	); err != nil {
		return err
	}
	return loadEnvInt("REDIS_DB", &c.RedisDB, 0, 15)
}

func loadEnvInt[T ~int | ~int64](
	key string, dst *T, minVal, maxVal T,
) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, key, v)
	}
	if T(n) < minVal || T(n) > maxVal {
		return fmt.Errorf("%w: %s=%d (must be %d-%d)",
			ErrInvalidEnvValue, key, n, minVal, maxVal)
	}
	*dst = T(n)
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.EngineURL == "" {
		return ErrEngineURLEmpty
	}
	if c.RequestTimeout <= 0 || c.RequestTimeout > MaxRequestTimeout {
		return fmt.Errorf("%w: %d",
			ErrInvalidRequestTimeout, c.RequestTimeout)
	}
	switch c.RecordSource {
	case RecordSourceEngine, RecordSourceRedis, RecordSourceSQLite:
	default:
		return fmt.Errorf("%w: %s",
			ErrInvalidRecordSource, c.RecordSource)
	}
	if c.RecordSource == RecordSourceRedis && c.RedisAddr == "" {
		return ErrRedisAddrEmpty
	}
	if c.RecordSource == RecordSourceSQLite && c.SQLitePath == "" {
		return ErrSQLitePathEmpty
	}
	return nil
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}
