// Package version provides build information for the llmpack CLI.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, for example:
// go build -ldflags "-X 'llmpack/pkg/version.Version=1.2.3' -X 'llmpack/pkg/version.Commit=abcdefg'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is reported in logs and version output.
const AppName = "llmpack"

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the information on one line, e.g.
// llmpack 1.2.3 (commit abcdefg, built 2025-04-27T15:04:05Z, go1.24.0 linux/amd64)
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s)",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
