package buildinfo

import "fmt"

// Stamped at build time:
//
//	go build -ldflags "-X github.com/soulfoods/morsels/internal/buildinfo.Version=v1.2.0 ..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Summary formats the build stamp for --version output.
func Summary() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
