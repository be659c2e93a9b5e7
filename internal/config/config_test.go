package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("GRIDCALC_CONFIG", path)
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("GRIDCALC_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadFromFile(t *testing.T) {
	writeConfig(t, `
[grid]
rows = 50
cols = 10
col_width = 12

[ui]
splash = false

[log]
level = "debug"
format = "json"
file = "/tmp/gridcalc.log"
`)
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 50, c.Grid.Rows)
	require.Equal(t, 10, c.Grid.Cols)
	require.Equal(t, 12, c.Grid.ColWidth)
	require.Equal(t, 1, c.Grid.RowHeight)
	require.False(t, c.UI.Splash)
	require.True(t, c.UI.MoveAfterEnter)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "json", c.Log.Format)
	require.Equal(t, "/tmp/gridcalc.log", c.Log.File)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	writeConfig(t, "[grid]\nrows = 50\n")
	t.Setenv("GRIDCALC_GRID_ROWS", "7")
	t.Setenv("GRIDCALC_LOG_LEVEL", "warn")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, c.Grid.Rows)
	require.Equal(t, "warn", c.Log.Level)
}

func TestLoadRejectsBadSizes(t *testing.T) {
	writeConfig(t, "[grid]\ncol_width = 2\n")
	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "col_width")
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	writeConfig(t, "[grid\nrows = ")
	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}

func TestPathPrefersEnv(t *testing.T) {
	t.Setenv("GRIDCALC_CONFIG", "/somewhere/custom.toml")
	require.Equal(t, "/somewhere/custom.toml", Path())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	c := Default()
	c.Grid.Rows = 0
	require.Error(t, c.Validate())

	c = Default()
	c.Grid.RowHeight = 0
	require.Error(t, c.Validate())
}
