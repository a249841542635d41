// Package version exposes the build version stamped into the binary.
package version

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)
