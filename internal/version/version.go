// Package version exposes build metadata stamped at link time via
// -ldflags "-X".
package version

// Populated by the release build; defaults describe a local dev build.
var (
	// Version is the semantic version of the gitply binary.
	Version = "dev"
	// Commit is the git hash the binary was built from.
	Commit = "<unknown>"
	// Date is the build timestamp.
	Date = "<unknown>"
)
