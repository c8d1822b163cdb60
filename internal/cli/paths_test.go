package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
		want string
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir, appName},
		{"config", "XDG_CONFIG_HOME", configDir, appName},
		{"data", "XDG_DATA_HOME", dataDir, filepath.Join(appName, "boards")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			t.Setenv(tt.env, base)

			dir, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, tt.want), dir)
		})
	}
}

func TestXDGDirsDefault(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache", appName), dir)

	dir, err = configDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", appName), dir)

	dir, err = dataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", appName, "boards"), dir)
}

func TestCLICacheDirFromConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/var/cache/wires"

	dir, err := c.cacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/wires", dir)
}
