// Package version carries build metadata set with -ldflags "-X".
package version

var (
	// Version contains the current version of usbnetd
	Version = "dev"

	// CommitHash contains the git commit the binary was built from
	CommitHash = "unknown"

	// BuildTime contains the time of build
	BuildTime = "unknown"
)
