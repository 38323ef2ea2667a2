// Package version reports the hwinventory build identity.
package version

import (
	"runtime"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/carverauto/hwinventory/pkg/version.version=...".
//
//nolint:gochecknoglobals // ldflags injection target
var (
	version = "dev"
	buildID = "dev"
)

//nolint:gochecknoglobals // replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	BuildID   string `json:"build_id"`
	Revision  string `json:"revision,omitempty"`
	GoVersion string `json:"go_version"`
}

// GetVersion returns the injected version. Untagged builds fall back to the
// module version recorded by the Go toolchain.
func GetVersion() string {
	if version != "dev" {
		return version
	}

	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	return version
}

// GetBuildID returns the current build ID
func GetBuildID() string {
	return buildID
}

// Get collects the full build identity.
func Get() Info {
	info := Info{
		Version:   GetVersion(),
		BuildID:   buildID,
		GoVersion: runtime.Version(),
	}

	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Revision = s.Value
			}
		}
	}

	return info
}

// GetFullVersion returns the one-line form printed by -version.
func GetFullVersion() string {
	info := Get()

	out := "hwinventory " + info.Version + " (build: " + info.BuildID
	if info.Revision != "" {
		out += ", rev: " + shortRev(info.Revision)
	}

	return out + ", " + info.GoVersion + ")"
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}

	return rev
}
