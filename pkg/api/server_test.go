package api

import (
	"testing"

	"github.com/openbatch/batchadmit/pkg/config"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

func TestRegistryFromEngineConfig(t *testing.T) {
	// Serve blocks, so exercise the wiring it performs instead of
	// running it.
	t.Setenv("ADMIT_MAX_LICENSES", "42")

	engine := config.DefaultEngine()
	if engine.MaxLicenses != 42 {
		t.Fatalf("MaxLicenses = %d, want 42", engine.MaxLicenses)
	}

	registry, err := verifier.New(engine.RegistryOptions()...)
	if err != nil {
		t.Fatalf("verifier.New failed: %v", err)
	}
	if registry == nil {
		t.Fatal("expected non-nil registry")
	}
}
