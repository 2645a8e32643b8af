// SPDX-License-Identifier: MIT

// Package build carries build metadata injected at compile time via -ldflags,
// e.g.
//
//	go build -ldflags "-X visualizer/pkg/build.buildName=visualizer \
//	    -X visualizer/pkg/build.buildVersion=0.1.0"
//
// Development builds without ldflags fall back to "dev" placeholders.
package build

type Info struct {
	Name    string // Application name
	Time    string // Build timestamp (RFC3339)
	Commit  string // Git commit hash
	Version string // Semantic version
}

// Package-level variables populated by -ldflags during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string

	info = Info{
		Name:    "visualizer",
		Time:    "dev",
		Commit:  "dev",
		Version: "dev",
	}
)

// Initialize copies any ldflags-provided values over the development
// defaults. Missing flags are not an error; a dev build simply reports
// placeholder metadata.
func Initialize() {
	if buildName != "" {
		info.Name = buildName
	}
	if buildTime != "" {
		info.Time = buildTime
	}
	if buildCommit != "" {
		info.Commit = buildCommit
	}
	if buildVersion != "" {
		info.Version = buildVersion
	}
}

// GetInfo returns the current build metadata. Call Initialize first.
func GetInfo() Info {
	return info
}
