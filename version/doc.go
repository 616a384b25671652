// Package version reports the build version of the aliasdi binary.
//
// Version, commit and build time are set at compile time via -ldflags and
// fall back to the VCS stamp of the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/aliasdi/version.Version=1.0.0" ./cmd/aliasdi
package version
