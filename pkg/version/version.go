// Package version exposes build information set through -ldflags.
package version

import "runtime/debug"

// Set at build time:
//
//	go build -ldflags "-X github.com/EHLuC/ecotrip/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

const devVersion = "dev"

// GetVersion returns the release version, falling back to the module
// version recorded by the Go toolchain and then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}
