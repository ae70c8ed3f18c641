package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLocalesRequired indicates the module was configured without any locale.
var ErrLocalesRequired = errors.New("holidays config: at least one locale is required")

// ErrDefaultLocaleUnknown indicates the default locale is not part of the configured locales.
var ErrDefaultLocaleUnknown = errors.New("holidays config: default locale must be listed in locales")

// ErrSnapshotPathRequired ensures the snapshot tier has a file to load when enabled.
var ErrSnapshotPathRequired = errors.New("holidays config: snapshot path is required when snapshot is enabled")

// ErrStorageProviderUnknown indicates the storage provider is invalid.
var ErrStorageProviderUnknown = errors.New("holidays config: storage provider is invalid")

// ErrStorageDriverUnknown indicates the storage driver is invalid.
var ErrStorageDriverUnknown = errors.New("holidays config: storage driver is invalid")

// ErrCacheTTLInvalid ensures cache TTLs stay non-negative.
var ErrCacheTTLInvalid = errors.New("holidays config: cache ttl must be zero or positive")

// ErrCacheRequiresStorage ensures the repository cache wraps an actual remote tier.
var ErrCacheRequiresStorage = errors.New("holidays config: cache requires the bun storage provider")

var ErrLoggingProviderRequired = errors.New("holidays config: logging provider is required when logger feature is enabled")
var ErrLoggingProviderUnknown = errors.New("holidays config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("holidays config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("holidays config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the holidays module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Locales       []string
	Snapshot      SnapshotConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Calendar      CalendarConfig
	Features      Features
	Commands      CommandsConfig
	Logging       LoggingConfig
}

// SnapshotConfig configures the local fallback tier.
type SnapshotConfig struct {
	Enabled bool
	Path    string
}

// StorageConfig lists identifiers for storage-related dependencies. Driver
// and DSN are only consulted by the bun provider when the host does not
// inject its own database handle.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures read-cache behaviour for the remote repository.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// CalendarConfig captures behaviour for the external calendar input.
type CalendarConfig struct {
	Dir            string
	ValidateSchema bool
}

// Features toggles module functionality.
type Features struct {
	// LegacyKeys keeps the historical key-variant probe on the read path.
	// Disable only after legacy records have been re-keyed to canonical form.
	LegacyKeys bool
	// Coalescing collapses concurrent identical lookups into one remote call.
	Coalescing bool
	Audit      bool
	Logger     bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a two-locale deployment.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "ko",
		Locales:       []string{"ko", "en"},
		Snapshot: SnapshotConfig{
			Enabled: true,
			Path:    "data/descriptions_snapshot.json",
		},
		Storage: StorageConfig{
			Provider: "bun",
			Driver:   "postgres",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Calendar: CalendarConfig{
			Dir:            "data/calendar",
			ValidateSchema: true,
		},
		Features: Features{
			LegacyKeys: true,
			Coalescing: true,
			Audit:      true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if len(cfg.Locales) == 0 {
		return ErrLocalesRequired
	}
	if locale := strings.TrimSpace(cfg.DefaultLocale); locale != "" && !containsLocale(cfg.Locales, locale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnknown, locale)
	}
	if cfg.Snapshot.Enabled && strings.TrimSpace(cfg.Snapshot.Path) == "" {
		return ErrSnapshotPathRequired
	}
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" && !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if driver := normalizeProvider(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Cache.Enabled && normalizeProvider(cfg.Storage.Provider) == "memory" {
		return ErrCacheRequiresStorage
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func containsLocale(locales []string, locale string) bool {
	for _, candidate := range locales {
		if strings.EqualFold(strings.TrimSpace(candidate), locale) {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "bun", "memory":
		return true
	default:
		return false
	}
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "postgres", "sqlite":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
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
