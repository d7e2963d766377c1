package version

import (
	"fmt"
	"runtime"
)

// Name of the tool
const Name = "superpicky-release"

// Set with -ldflags "-X" at build time
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// VersionInfo returns the full version string printed by --version.
func VersionInfo() string {
	return fmt.Sprintf("%s version %s\nCommit: %s\nBuilt: %s\nGo version: %s (%s/%s)",
		Name, Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
