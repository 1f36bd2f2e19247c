package settings

import (
	"runtime/debug"
)

const shortRevisionLength = 7

// GitVersion returns the module version, or the vcs revision for development builds.
func GitVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return ""
	}
	return versionFromBuildInfo(bi)
}

func versionFromBuildInfo(bi *debug.BuildInfo) string {
	if version := bi.Main.Version; version != "" && version != "(devel)" {
		return version
	}

	vcs := make(map[string]string, len(bi.Settings))
	for _, setting := range bi.Settings {
		vcs[setting.Key] = setting.Value
	}

	rev := vcs["vcs.revision"]
	if rev == "" {
		return "dev"
	}
	if len(rev) > shortRevisionLength {
		rev = rev[:shortRevisionLength]
	}
	if vcs["vcs.modified"] == "true" {
		rev += "-dirty"
	}
	return rev
}
