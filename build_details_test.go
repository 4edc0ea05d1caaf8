package apitestgen

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() is either "dev" or a release tag.
func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommitAndBuildTime(t *testing.T) {
	assert.NotEmpty(t, Commit())
	if bt := BuildTime(); bt != "unknown" {
		assert.Contains(t, bt, "T", "BuildTime() should be RFC3339, got: %s", bt)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

// TestUserAgent verifies the User-Agent carries the version and no header-breaking characters.
func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "apitestgen/"+Version(), ua)
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\r")
	assert.NotContains(t, ua, "\n")
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, result, label)
	}
	assert.Contains(t, result, Version())
	assert.Contains(t, result, GoVersion())
}
