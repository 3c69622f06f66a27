package version

import (
	"runtime/debug"
)

const (
	modulePath = "github.com/curtisnewbie/isodate"
)

var (
	Version = "v0.1.0"
)

func init() {
	if ver := ReadBuildVersion(); ver != "" {
		Version = ver
	}
}

// Read version of the module from build info, returns empty string if unknown.
func ReadBuildVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if buildInfo.Main.Path == modulePath && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	for _, dep := range buildInfo.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return ""
}
