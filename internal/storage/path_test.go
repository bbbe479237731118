package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDataDirOverride(t *testing.T) {
	t.Setenv("GORGON_DATA_DIR", "/srv/gorgon")
	dir, err := resolveDataDir("linux")
	require.NoError(t, err)
	require.Equal(t, "/srv/gorgon", dir)
}

func TestResolveDataDirLinuxXDG(t *testing.T) {
	t.Setenv("GORGON_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	dir, err := resolveDataDir("linux")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/xdg/data", AppDirName), dir)
}

func TestResolveDataDirDarwin(t *testing.T) {
	t.Setenv("GORGON_DATA_DIR", "")
	t.Setenv("HOME", "/Users/me")
	dir, err := resolveDataDir("darwin")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/Users/me", "Library", "Application Support", AppDirName), dir)
}

func TestDataDirCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("GORGON_DATA_DIR", root)
	dir, err := DataDir()
	require.NoError(t, err)
	require.DirExists(t, dir)
	require.Equal(t, filepath.Join(root, "catalog.db"), CatalogPath(dir))
	require.Equal(t, filepath.Join(root, "logs", "gorgon.log"), LogPath(dir))
}
