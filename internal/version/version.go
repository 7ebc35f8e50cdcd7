package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/fixtree/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/fixtree/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/fixtree/internal/version.Date={{.Date}}
)

// String formats the build information for the version command.
func String(appName string) string {
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", appName, Version, Commit, Date)
}
