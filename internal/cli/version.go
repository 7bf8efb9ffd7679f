package cli

import (
	"runtime/debug"

	"github.com/funvibe/typedispatch/internal/config"
)

// Version returns the version string.
//
// A version set at link time wins. Otherwise the module version is used
// when installed via `go install ...@version`, and "devel+abc1234" with the
// VCS revision for development builds.
func Version() string {
	if config.Version != "dev" {
		return config.Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return config.Version
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "devel+" + s.Value[:7]
		}
	}
	return "devel"
}
