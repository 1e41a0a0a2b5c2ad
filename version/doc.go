// Package version provides build version information for the SDK and its
// tools.
//
// Version, git commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/lokanhome/lokan-go/version.Version=0.2.0"
package version
