package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/skfit-uni-luebeck/EDQM2FHIR/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("edqm2fhir %s (commit=%s, date=%s)", Version, Commit, Date)
}
