package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipOnPanic(t *testing.T) {
	t.Run("panic becomes skip", func(t *testing.T) {
		var inner *testing.T
		passed := t.Run("docker host lookup", func(st *testing.T) {
			inner = st
			skipOnPanic(st, func() { panic("rootless Docker not found") })
			st.Fatal("reached the test body without a runtime")
		})
		assert.True(t, passed)
		assert.True(t, inner.Skipped())
	})

	t.Run("healthy runtime continues", func(t *testing.T) {
		reached := false
		passed := t.Run("docker available", func(st *testing.T) {
			skipOnPanic(st, func() {})
			reached = true
		})
		assert.True(t, passed)
		assert.True(t, reached)
	})
}
