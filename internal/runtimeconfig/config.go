package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("admin config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("admin config: storage dsn is required for this provider")
var ErrMediaCredentialsIncomplete = errors.New("admin config: media credentials are incomplete")
var ErrLoggingProviderRequired = errors.New("admin config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("admin config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("admin config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("admin config: logging format is invalid")
var ErrCacheTTLInvalid = errors.New("admin config: cache ttl must be zero or positive")

// Config aggregates feature flags and adapter bindings for the admin
// console module. Fields intentionally use simple types so host
// applications can extend them later.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Media    MediaConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// StorageConfig selects the document store backing the console.
type StorageConfig struct {
	// Provider is one of memory, sqlite, postgres.
	Provider string
	// DSN is the connection string for database-backed providers.
	DSN string
}

// MediaConfig carries the hosted image service credentials.
type MediaConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the destination folder for uploads.
	Folder string
	// BaseURL overrides the upload endpoint, used by tests.
	BaseURL string
}

// CacheConfig captures read-cache behaviour for the document store.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	// Media enables image uploads; without it, submits with pending local
	// images fail.
	Media bool
	// Logger enables the structured logging provider.
	Logger bool
	// BlogImport enables publishing Markdown-authored blog posts.
	BlogImport bool
}

// DefaultConfig returns a baseline configuration: in-memory storage,
// console logging, caching on.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Media: MediaConfig{
			Folder: "fitmaker_blogs",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
	}
}

// Validate checks cross-field consistency before the module boots.
func (cfg Config) Validate() error {
	provider := normalizeProvider(cfg.Storage.Provider)
	switch provider {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Features.Media {
		if strings.TrimSpace(cfg.Media.CloudName) == "" ||
			strings.TrimSpace(cfg.Media.APIKey) == "" ||
			strings.TrimSpace(cfg.Media.APISecret) == "" {
			return ErrMediaCredentialsIncomplete
		}
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Features.Logger {
		logProvider := normalizeProvider(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLogProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
