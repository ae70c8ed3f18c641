package holidays

import "github.com/goliatone/go-holidays/internal/runtimeconfig"

var (
	ErrLocalesRequired         = runtimeconfig.ErrLocalesRequired
	ErrDefaultLocaleUnknown    = runtimeconfig.ErrDefaultLocaleUnknown
	ErrSnapshotPathRequired    = runtimeconfig.ErrSnapshotPathRequired
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresStorage    = runtimeconfig.ErrCacheRequiresStorage
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SnapshotConfig = runtimeconfig.SnapshotConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	CalendarConfig = runtimeconfig.CalendarConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
