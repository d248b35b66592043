// Package buildinfo holds identifiers stamped in at link time, e.g.
//
//	-ldflags "-X beacon/internal/buildinfo.Version=v0.2.0"
package buildinfo

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full identifier printed by -version.
func String() string {
	return fmt.Sprintf("beacon %s (commit %s, built %s)", Version, Commit, Date)
}
