// Package version exposes build metadata for the running binary.
package version

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "dev"
