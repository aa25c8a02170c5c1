package main

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	got := getVersion()

	if got == "" {
		t.Error("getVersion() returned empty string")
	}

	// Under the test binary the ldflags stamp is absent, so the result is
	// either "dev" or a tagged module version.
	if got != "dev" && !strings.HasPrefix(got, "v") {
		t.Errorf("getVersion() = %q, want 'dev' or 'vX.Y.Z'", got)
	}
}
