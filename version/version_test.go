package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	info := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-02T03:04:05Z", Version: "v1.2.0"}
	assert.Equal(t, "bindgen v1.2.0 (commit 0123456, built 2026-01-02T03:04:05Z)", info.String())
	assert.Equal(t, "0123456", info.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/teranos/bindgen", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "feedfacecafe"},
			{Key: "vcs.time", Value: "2026-03-04T00:00:00Z"},
		},
	}

	info := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}
	fillFromBuildInfo(&info, bi)
	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "feedfacecafe", info.CommitHash)
	assert.Equal(t, "2026-03-04T00:00:00Z", info.BuildTime)

	// ldflags win over build info
	stamped := Info{CommitHash: "abc1234", BuildTime: "then", Version: "v9.0.0"}
	fillFromBuildInfo(&stamped, bi)
	assert.Equal(t, "v9.0.0", stamped.Version)
	assert.Equal(t, "abc1234", stamped.CommitHash)
	assert.Equal(t, "then", stamped.BuildTime)

	devel := Info{Version: "dev"}
	fillFromBuildInfo(&devel, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", devel.Version)
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
