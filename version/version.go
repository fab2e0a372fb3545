// Package version records the build version for the find and xargs binaries.
package version

import "fmt"

const (
	// Major represents the current major version.
	Major = 1
	// Minor represents the current minor version.
	Minor = 0
	// Patch represents the current patch version.
	Patch = 0
)

// Version is the full dotted version string.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// String returns the full dotted version string.
func String() string {
	return Version
}
