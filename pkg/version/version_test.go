package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	t.Run("linker value wins", func(t *testing.T) {
		old := version
		t.Cleanup(func() { version = old })

		version = "v1.2.3"
		assert.Equal(t, "v1.2.3", GetVersion())
	})

	t.Run("never empty", func(t *testing.T) {
		old := version
		t.Cleanup(func() { version = old })

		version = ""
		assert.NotEmpty(t, GetVersion())
	})
}

func TestBuildMetadata(t *testing.T) {
	oldCommit, oldDate := gitCommit, buildDate
	t.Cleanup(func() { gitCommit, buildDate = oldCommit, oldDate })

	gitCommit, buildDate = "abc123", "2026-01-02"
	assert.Equal(t, "abc123", GetGitCommit())
	assert.Equal(t, "2026-01-02", GetBuildDate())
}
