// Package version reports the build identity of ethos-login.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X".
//
//nolint:gochecknoglobals // ldflags targets must be package variables
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info is the build identity.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build identity. When ldflags were not set the module
// version and VCS revision embedded by the Go toolchain are used instead.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
}

// String formats the identity for `ethos-login version`.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ethos-login %s", NormalizeVersion(i.Version))
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s", shortCommit(i.Commit))
		if i.Date != "" {
			fmt.Fprintf(&sb, ", %s", i.Date)
		}
		sb.WriteString(")")
	}
	fmt.Fprintf(&sb, " %s %s", i.GoVersion, i.Platform)
	return sb.String()
}

// NormalizeVersion ensures tagged versions carry a "v" prefix.
// Non-numeric versions such as "dev" are returned unchanged.
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "dev"
	}
	if strings.HasPrefix(v, "v") {
		return v
	}
	if v[0] >= '0' && v[0] <= '9' {
		return "v" + v
	}
	return v
}

func shortCommit(c string) string {
	const n = 7
	if len(c) > n {
		return c[:n]
	}
	return c
}
