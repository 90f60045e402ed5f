// Package version exposes build metadata stamped via ldflags.
package version

//nolint:revive // Overwritten by the linker at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the full build identifier for startup logs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
