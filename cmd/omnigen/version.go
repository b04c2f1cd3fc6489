package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version when installed with go install, and
// otherwise "devel-<VERSION>" plus the short VCS revision and a "-dirty"
// marker for modified checkouts.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	return version(strings.TrimSpace(embeddedVersion), info, ok)
}

func version(base string, info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	out := "devel-" + base
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) >= 7 {
		out += "+" + rev[:7]
		if dirty {
			out += "-dirty"
		}
	}
	return out
}
