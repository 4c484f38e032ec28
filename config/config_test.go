package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/config"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.GridSize = 250
	cfg.OptMode = config.OptExh
	cfg.MaxGrDist.Set(4)

	path := filepath.Join(t.TempDir(), "octilayout.yaml")
	require.NoError(t, config.Save(cfg, path))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.GridSize, got.GridSize)
	require.Equal(t, cfg.OptMode, got.OptMode)
	require.True(t, got.MaxGrDist.Valid)
	require.Equal(t, 4.0, got.MaxGrDist.Value)
}

func TestLoadKeepsDefaultsForUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_size: 50\n"), 0o644))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 50.0, got.GridSize)
	require.Equal(t, config.OptComb, got.OptMode)
	require.False(t, got.MaxGrDist.Valid)
}
