package buildconfig

import "runtime"

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/voxbridge/internal/buildconfig.version=v1.2.0
var (
	version = "dev"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// String returns a one-line version banner.
func String() string {
	return "voxbridge " + version + " (" + commit + ", " + runtime.Version() + ")"
}

// VersionInfo returns full version information
func VersionInfo() map[string]string {
	return map[string]string{
		"version":    version,
		"commit":     commit,
		"go_version": runtime.Version(),
	}
}
