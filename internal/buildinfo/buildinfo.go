// Package buildinfo carries version stamps injected with
// -ldflags "-X wirespin/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the identifier shown in the HUD and window title: the release
// version when stamped, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// Long is the -version line.
func Long() string {
	return fmt.Sprintf("wirespin %s (commit %s, built %s)", Version, Commit, Date)
}
