// Package version holds build-time identifying information, overridden via
// -ldflags at release build time.
package version

// BinaryName is the CLI's command name, shared by cobra's root command and
// the version command's own output so the two never drift apart.
const BinaryName = "placer"

var (
	// Version is the semantic version, or "dev" for local builds.
	Version = "dev"
	// Commit is the git commit hash this binary was built from.
	Commit = "none"
	// BuildDate is the RFC3339 build timestamp.
	BuildDate = "unknown"
)
