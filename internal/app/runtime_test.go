package app

import (
	"testing"

	_ "github.com/odyssey-erp/custom-accounting/internal/testing/guard"
)

func TestInTestModeFollowsEnvironment(t *testing.T) {
	RefreshTestMode()
	if !InTestMode() {
		t.Fatalf("expected guard import to enable test mode")
	}

	t.Setenv(testModeEnv, "0")
	RefreshTestMode()
	if InTestMode() {
		t.Fatalf("expected test mode to be disabled")
	}

	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	if !InTestMode() {
		t.Fatalf("expected test mode to be enabled again")
	}
}
