// Package version reports the build of the running binary
package version

import "runtime/debug"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service   string `json:"service" example:"streaks-api"`
	Version   string `json:"version" example:"v1.2.0"`
	Commit    string `json:"commit" example:"3f2c1d9"`
	Date      string `json:"date" example:"2025-09-02"`
	GoVersion string `json:"go_version,omitempty" example:"go1.25.0"`
}

// Set via -ldflags "-X 'streaks/internal/core/version.version=v0.0.1'
// -X 'streaks/internal/core/version.commit=abcd' -X 'streaks/internal/core/version.date=2025-09-02'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is a seam for tests
var readBuildInfo = debug.ReadBuildInfo

// Info returns the build information, ldflags win over the embedded vcs stamp
func Info() BuildInfo {
	bi := BuildInfo{
		Service: "streaks-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	info, ok := readBuildInfo()
	if !ok {
		return bi
	}
	bi.GoVersion = info.GoVersion
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "none" && s.Value != "" {
				bi.Commit = s.Value
			}
		case "vcs.time":
			if bi.Date == "unknown" && s.Value != "" {
				bi.Date = s.Value
			}
		}
	}
	return bi
}
