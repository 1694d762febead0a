package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.CUESDKVersion, "CUESDKVersion should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:       "v1.0.0",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-29",
		GoVersion:     "go1.25",
		CUESDKVersion: "v0.15.0",
	}

	str := info.String()

	assert.Contains(t, str, "standalone version v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "v0.15.0")
}

func TestCUESDKVersion(t *testing.T) {
	tests := []struct {
		name string
		bi   *debug.BuildInfo
		ok   bool
		want string
	}{
		{
			name: "no build info",
			want: fallbackCUESDKVersion,
		},
		{
			name: "dependency present",
			bi:   &debug.BuildInfo{Deps: []*debug.Module{{Path: "cuelang.org/go", Version: "v0.15.9"}}},
			ok:   true,
			want: "v0.15.9",
		},
		{
			name: "replaced dependency",
			bi: &debug.BuildInfo{Deps: []*debug.Module{{
				Path:    "cuelang.org/go",
				Version: "v0.15.9",
				Replace: &debug.Module{Path: "example.org/cue", Version: "v0.16.0"},
			}}},
			ok:   true,
			want: "v0.16.0",
		},
		{
			name: "dependency absent",
			bi:   &debug.BuildInfo{Deps: []*debug.Module{{Path: "github.com/spf13/cobra", Version: "v1.10.2"}}},
			ok:   true,
			want: fallbackCUESDKVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cueSDKVersion(tt.bi, tt.ok))
		})
	}
}
