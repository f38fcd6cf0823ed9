// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/stepwall/pkg/buildinfo.Version=v2.0.0 \
//	    -X github.com/matzehuels/stepwall/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/stepwall/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/stepwall
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// Version is the semantic version (e.g., "v2.0.0").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// ServiceName is reported by the API's usage document.
const ServiceName = "10K Steps Wallpaper Generator"

// Short returns the version without a leading "v", falling back to the
// module version recorded by `go install` when no ldflags were given.
func Short() string {
	v := Version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return strings.TrimPrefix(v, "v")
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
