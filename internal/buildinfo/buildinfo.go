// Package buildinfo reports the application identity shown in the UI.
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// AppName is the product name.
const AppName = "Gorgon Desktop"

// Version is overridden at link time:
//
//	go build -ldflags "-X github.com/AreteDriver/Gorgon/internal/buildinfo.Version=1.2.3"
var Version = "0.1.0"

const runtimeModule = "github.com/wailsapp/wails/v2"

// AppInfo is the payload of get_app_info.
type AppInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	RuntimeVersion string `json:"runtimeVersion"`
	GoVersion      string `json:"goVersion"`
}

// Info collects the current build's identity.
func Info() AppInfo {
	return AppInfo{
		Name:           AppName,
		Version:        Version,
		RuntimeVersion: RuntimeVersion(),
		GoVersion:      runtime.Version(),
	}
}

// RuntimeVersion is the version of the desktop shell linked into the binary,
// or "unknown" when build metadata is unavailable.
func RuntimeVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return moduleVersion(bi, runtimeModule)
}

func moduleVersion(bi *debug.BuildInfo, path string) string {
	for _, dep := range bi.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
}
