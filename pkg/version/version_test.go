package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()

	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }

	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetVersionFallsBackToModuleVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}})

	assert.Equal(t, "v1.2.3", GetVersion())
}

func TestGetVersionDevelBuild(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	assert.Equal(t, "dev", GetVersion())
}

func TestGetFullVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef0123"}},
	})

	info := Get()
	assert.Equal(t, "0123456789abcdef0123", info.Revision)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	assert.Equal(t, "hwinventory dev (build: dev, rev: 0123456789ab, "+runtime.Version()+")", GetFullVersion())
}

func TestGetFullVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)

	assert.Equal(t, "hwinventory dev (build: dev, "+runtime.Version()+")", GetFullVersion())
}
