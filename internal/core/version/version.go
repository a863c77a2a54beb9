// Package version reports what build of the api is running
package version

import "runtime/debug"

// set with -ldflags "-X addressbook/internal/core/version.version=v0.1.0" and friends
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is the /meta/version payload
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info prefers the linker stamped values and falls back to the vcs
// settings go build embeds
func Info() BuildInfo {
	out := BuildInfo{Service: "addressbook-api", Version: version, Commit: commit, Date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && out.Commit == "":
				out.Commit = s.Value
			case s.Key == "vcs.time" && out.Date == "":
				out.Date = s.Value
			}
		}
	}
	if out.Commit == "" {
		out.Commit = "none"
	}
	if out.Date == "" {
		out.Date = "unknown"
	}
	return out
}
