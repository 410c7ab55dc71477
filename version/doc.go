// Package version provides build version information embedding and the
// default User-Agent string sent by restkit transports.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.0.0"
package version
