// Package version holds build information of the tcc binary.
package version

import (
	"runtime/debug"
)

// Set at link time with -ldflags "-X github.com/Sumatoshi-tech/tcc/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = ""
)

const revisionKey = "vcs.revision"

// Info is the build information reported by the version command.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information, falling back to the module build info
// for values not injected at link time.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	if info.Commit == "<unknown>" {
		for _, s := range bi.Settings {
			if s.Key == revisionKey && s.Value != "" {
				info.Commit = s.Value
			}
		}
	}

	return info
}

// String formats the build information on one line.
func (i Info) String() string {
	s := i.Version + " (" + i.Commit
	if i.Date != "" {
		s += ", " + i.Date
	}

	s += ")"

	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}

	return s
}
