package version

import (
	"strings"
	"testing"
)

func TestVersionHasDefault(t *testing.T) {
	if Version == "" {
		t.Fatalf("Version is empty")
	}
	if !strings.Contains(Version, ".") {
		t.Fatalf("Version %q is not dotted", Version)
	}
}
