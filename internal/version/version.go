// Package version carries the build version, set with
// -ldflags "-X github.com/bnema/agent-crew/internal/version.Version=...".
package version

var Version = "dev"
