package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	limits, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, 64*256, limits.StackSlots)
	require.Equal(t, 64, limits.Frames)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wisprc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack_slots: 1024\nframes: 8\n"), 0600))

	limits, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1024, limits.StackSlots)
	require.Equal(t, 8, limits.Frames)
}

func TestLoadPartialOverrideKeepsOtherDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wisprc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frames: 16\n"), 0600))

	limits, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64*256, limits.StackSlots)
	require.Equal(t, 16, limits.Frames)
}
