package version

import (
	"runtime"
	"time"
)

// Build metadata, overridden with -ldflags "-X github.com/MrSnakeDoc/shelf/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)

// String renders the metadata on one line for logs and the CLI.
func String() string {
	return Version + " (commit=" + Commit + ", built=" + BuildDate + ", go=" + GoVersion + ")"
}
