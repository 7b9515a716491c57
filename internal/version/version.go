// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information (Git commit, state) to the CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set with -ldflags "-X github.com/otlp2parquet/cli/internal/version.Version=v0.4.0"
// for release builds.
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version when it was stamped at link time.
// Otherwise it falls back to the VCS revision from build info, optionally
// appended with "(dirty)" if the tree was modified, and "dev" when neither
// is available.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			// Shorten revision to 7 chars if possible
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}

	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
