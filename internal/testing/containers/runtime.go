// Package containers holds helpers shared by the container-backed test fixtures.
package containers

import (
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// SkipIfUnavailable skips t in short mode or when no container runtime can be
// reached. testcontainers panics while resolving the Docker host when none is
// installed; that panic is turned into a skip as well.
func SkipIfUnavailable(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	skipOnPanic(t, func() { testcontainers.SkipIfProviderIsNotHealthy(t) })
}

func skipOnPanic(t *testing.T, check func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("container runtime not available: %v", r)
		}
	}()
	check()
}
