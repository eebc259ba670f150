// Package version holds build metadata injected with -ldflags.
package version

// Set via -ldflags "-X github.com/doeshing/textpolish/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
