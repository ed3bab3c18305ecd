package config

import (
	"testing"
	"time"

	"github.com/openbatch/batchadmit/pkg/verifier"
)

func TestDefaultEngine(t *testing.T) {
	cfg := DefaultEngine()
	if cfg.MaxLicenses != verifier.DefaultMaxLicenses {
		t.Fatalf("MaxLicenses = %d, want %d", cfg.MaxLicenses, verifier.DefaultMaxLicenses)
	}
	if cfg.ResolveTimeout != 5*time.Second {
		t.Fatalf("ResolveTimeout = %v, want 5s", cfg.ResolveTimeout)
	}
}

func TestDefaultEngineEnvOverrides(t *testing.T) {
	t.Setenv("ADMIT_MAX_LICENSES", "5000")
	t.Setenv("ADMIT_RESOLVE_TIMEOUT", "250ms")

	cfg := DefaultEngine()
	if cfg.MaxLicenses != 5000 {
		t.Fatalf("MaxLicenses = %d, want 5000", cfg.MaxLicenses)
	}
	if cfg.ResolveTimeout != 250*time.Millisecond {
		t.Fatalf("ResolveTimeout = %v, want 250ms", cfg.ResolveTimeout)
	}
}

func TestDefaultEngineIgnoresBadEnv(t *testing.T) {
	t.Setenv("ADMIT_MAX_LICENSES", "minus one")
	t.Setenv("ADMIT_RESOLVE_TIMEOUT", "-3s")

	cfg := DefaultEngine()
	if cfg.MaxLicenses != verifier.DefaultMaxLicenses {
		t.Fatalf("MaxLicenses = %d, want default", cfg.MaxLicenses)
	}
	if cfg.ResolveTimeout != 5*time.Second {
		t.Fatalf("ResolveTimeout = %v, want default", cfg.ResolveTimeout)
	}
}
