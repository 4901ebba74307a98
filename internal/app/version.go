package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata, stamped at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/nivara-backend/internal/app.Version=1.0.0" ./cmd/nivara
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build metadata for logs and `nivara --version`.
// Unstamped builds fall back to the VCS revision the toolchain recorded.
func BuildVersion() string {
	commit := Commit
	if commit == "unknown" {
		if rev := vcsRevision(); rev != "" {
			commit = rev
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, BuildTime)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
