package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vinauto.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
tools:
  vina_path: /usr/local/bin/vina
docking:
  num_poses: 9
  exhaustiveness: 16
run:
  workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/vina", cfg.Tools.VinaPath)
	assert.Equal(t, 9, cfg.Docking.NumPoses)
	assert.Equal(t, 16, cfg.Docking.Exhaustiveness)
	assert.Equal(t, 2, cfg.Run.Workers)
	// Unset fields fall back to defaults.
	assert.Equal(t, "obabel", cfg.Tools.ObabelPath)
	assert.Equal(t, 10.0, cfg.Docking.Padding)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
docking:
  padding: -3
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VINAUTO_TOOLS_VINA_PATH", "/opt/vina")
	t.Setenv("VINAUTO_RUN_WORKERS", "3")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/opt/vina", cfg.Tools.VinaPath)
	assert.Equal(t, 3, cfg.Run.Workers)
}
