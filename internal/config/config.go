// Package config provides centralized configuration management for mailmorph.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; nothing mutates
// after startup.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Upload    UploadConfig
	Retention RetentionConfig
	Rate      RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StorageConfig holds file storage settings.
type StorageConfig struct {
	// Directory is the managed upload directory (default: uploads)
	Directory string `env:"UPLOAD_FOLDER" default:"uploads"`

	// MaxFileSize is the maximum allowed file size in bytes (default: 16MB)
	MaxFileSize int64 `env:"MAX_CONTENT_LENGTH" default:"16777216"`

	// AllowedExtensions are accepted upload extensions, comma-separated,
	// without dots (default: csv,txt)
	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS" default:"csv,txt"`
}

// UploadConfig holds transformation processing settings.
type UploadConfig struct {
	// MaxRows is the data-row ceiling per file, excluding the header
	// (default: 100000)
	MaxRows int `env:"MAX_ROWS_LIMIT" default:"100000"`

	// MaxConcurrent is the maximum number of parallel uploads (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for an upload slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`

	// PreviewSampleSize is the number of sample rows returned by previews
	// (default: 10)
	PreviewSampleSize int `env:"PREVIEW_SAMPLE_SIZE" default:"10"`
}

// RetentionConfig holds artifact cleanup settings.
type RetentionConfig struct {
	// MaxFileAge is how long artifacts survive before deletion (default: 30m)
	MaxFileAge time.Duration `env:"MAX_FILE_AGE" default:"30m"`

	// CleanupInterval is how often the janitor sweeps (default: 1h)
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" default:"1h"`
}

// RateLimitConfig holds request throttling settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: false)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"false"`

	// RequestsPerMinute is the per-IP request budget (default: 10)
	RequestsPerMinute int `env:"MAX_REQUESTS_PER_MINUTE" default:"10"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
