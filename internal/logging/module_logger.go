package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-holidays/pkg/interfaces"
)

const (
	rootModule         = "holidays"
	descriptionsModule = "holidays.descriptions"
	snapshotModule     = "holidays.snapshot"
	scannerModule      = "holidays.scanner"
	adminModule        = "holidays.admin"
)

const (
	fieldHolidayName = "holiday_name"
	fieldCountry     = "country"
	fieldLocale      = "locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DescriptionsLogger returns the logger namespace reserved for the description resolver.
func DescriptionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, descriptionsModule)
}

// SnapshotLogger returns the logger namespace reserved for the local snapshot tier.
func SnapshotLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, snapshotModule)
}

// ScannerLogger returns the logger namespace reserved for missing-set scans.
func ScannerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scannerModule)
}

// AdminLogger returns the logger namespace reserved for admin curation helpers.
func AdminLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, adminModule)
}

// WithIdentityContext enriches the provided logger with the holiday identity
// fields shared across resolver and scanner entries. Empty values are ignored.
func WithIdentityContext(logger interfaces.Logger, holidayName, country, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(holidayName); trimmed != "" {
		fields[fieldHolidayName] = trimmed
	}
	if trimmed := strings.TrimSpace(country); trimmed != "" {
		fields[fieldCountry] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
