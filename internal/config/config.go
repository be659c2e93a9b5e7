package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Grid GridConfig `mapstructure:"grid"`
	UI   UIConfig   `mapstructure:"ui"`
	Log  LogConfig  `mapstructure:"log"`
}

// GridConfig sizes a new sheet and its columns.
type GridConfig struct {
	Rows      int `mapstructure:"rows"`
	Cols      int `mapstructure:"cols"`
	ColWidth  int `mapstructure:"col_width"`
	RowHeight int `mapstructure:"row_height"`
}

// UIConfig holds terminal UI behaviour.
type UIConfig struct {
	Splash         bool `mapstructure:"splash"`
	MoveAfterEnter bool `mapstructure:"move_after_enter"`
}

// LogConfig selects level, format and destination. An empty File means
// stderr for the CLI and no logging at all for the TUI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Default matches a blank spreadsheet: 100 rows, columns A through Z.
func Default() Config {
	return Config{
		Grid: GridConfig{Rows: 100, Cols: 26, ColWidth: 16, RowHeight: 1},
		UI:   UIConfig{Splash: true, MoveAfterEnter: true},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Path returns the config file location: $GRIDCALC_CONFIG, or config.toml
// under the user config directory.
func Path() string {
	if p := os.Getenv("GRIDCALC_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "gridcalc", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix GRIDCALC_.
// A missing config file is not an error.
func Load() (Config, error) {
	d := Default()
	v := viper.New()

	v.SetDefault("grid.rows", d.Grid.Rows)
	v.SetDefault("grid.cols", d.Grid.Cols)
	v.SetDefault("grid.col_width", d.Grid.ColWidth)
	v.SetDefault("grid.row_height", d.Grid.RowHeight)
	v.SetDefault("ui.splash", d.UI.Splash)
	v.SetDefault("ui.move_after_enter", d.UI.MoveAfterEnter)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("GRIDCALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects sizes the grid cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Grid.Rows < 1 || c.Grid.Cols < 1:
		return fmt.Errorf("config: grid must have at least one row and column, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	case c.Grid.ColWidth < 4:
		return fmt.Errorf("config: grid.col_width must be at least 4, got %d", c.Grid.ColWidth)
	case c.Grid.RowHeight < 1:
		return fmt.Errorf("config: grid.row_height must be at least 1, got %d", c.Grid.RowHeight)
	}
	return nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
