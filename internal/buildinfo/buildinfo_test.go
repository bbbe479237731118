package buildinfo

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	info := Info()
	require.Equal(t, "Gorgon Desktop", info.Name)
	require.Equal(t, Version, info.Version)
	require.Equal(t, runtime.Version(), info.GoVersion)
	require.NotEmpty(t, info.RuntimeVersion)
}

func TestModuleVersion(t *testing.T) {
	bi := &debug.BuildInfo{Deps: []*debug.Module{
		{Path: "golang.org/x/sys", Version: "v0.39.0"},
		{Path: runtimeModule, Version: "v2.10.1"},
	}}
	require.Equal(t, "v2.10.1", moduleVersion(bi, runtimeModule))
	require.Equal(t, "unknown", moduleVersion(bi, "example.com/missing"))

	bi.Deps[1].Replace = &debug.Module{Path: "../wails", Version: "v2.10.2-dev"}
	require.Equal(t, "v2.10.2-dev", moduleVersion(bi, runtimeModule))
}
