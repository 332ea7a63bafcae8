package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.3", GitCommit: "abc", BuildTime: "now", GoVersion: "go1.24.0", Platform: "linux/amd64"}
	assert.Equal(t, "llmpack 1.2.3 (commit abc, built now, go1.24.0 linux/amd64)", info.String())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.True(t, strings.Contains(info.Platform, "/"))
}
