package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/vimdot/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/vimdot/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/vimdot/internal/version.Date={{.Date}}
)

// String formats the build information for `vimdot version`
func String() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
