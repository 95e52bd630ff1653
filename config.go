package admin

import "github.com/arya-5990/RoarFitnessAdmin/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrMediaCredentialsIncomplete = runtimeconfig.ErrMediaCredentialsIncomplete
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	MediaConfig   = runtimeconfig.MediaConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
