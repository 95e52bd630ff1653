package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/arya-5990/RoarFitnessAdmin/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "dynamo"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown got %v", err)
	}

	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired got %v", err)
	}

	cfg.Storage.DSN = "file:admin.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite with dsn must validate: %v", err)
	}
}

func TestValidateMediaCredentials(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Media = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMediaCredentialsIncomplete) {
		t.Fatalf("expected ErrMediaCredentialsIncomplete got %v", err)
	}

	cfg.Media.CloudName = "demo"
	cfg.Media.APIKey = "key"
	cfg.Media.APISecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete credentials must validate: %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid logging config must pass: %v", err)
	}
}

func TestValidateCacheTTL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.DefaultTTL = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid got %v", err)
	}
}
