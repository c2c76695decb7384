package app

import "fmt"

// Set via -ldflags at build time, e.g.
// -X github.com/lingobeats/lingobeats-backend/internal/app.Version=1.0.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build identity for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
