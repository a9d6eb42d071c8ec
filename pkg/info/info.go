// Package info holds build information injected with -ldflags "-X".
package info

import (
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate string
)

var VersionInfo = struct {
	Version   string
	Commit    string
	GoVersion string
	Platform  string
	BuildDate string
}{
	Version:   Version,
	Commit:    Commit,
	BuildDate: BuildDate,
	GoVersion: runtime.Version(),
	Platform:  runtime.GOOS + "/" + runtime.GOARCH,
}
