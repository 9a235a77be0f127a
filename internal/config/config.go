// Package config loads settings from defaults, a TOML file, the environment
// and command-line flags, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	kToml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"nodenotes/internal/render"
)

// EnvPrefix starts every environment override. Nested keys are separated by
// a double underscore: NODENOTES_CANVAS__NODE_SIZE sets canvas.node_size.
const EnvPrefix = "NODENOTES_"

type Config struct {
	Root   string       `koanf:"root" toml:"root" validate:"required"`
	Graph  string       `koanf:"graph" toml:"graph"`
	Watch  bool         `koanf:"watch" toml:"watch"`
	Log    LogConfig    `koanf:"log" toml:"log"`
	Canvas CanvasConfig `koanf:"canvas" toml:"canvas"`
	Editor EditorConfig `koanf:"editor" toml:"editor"`
	TUI    TUIConfig    `koanf:"tui" toml:"tui"`
}

type LogConfig struct {
	File  string `koanf:"file" toml:"file"`
	Level string `koanf:"level" toml:"level" validate:"oneof=debug info warn error"`
}

// CanvasConfig sizes nodes and the off-screen image, in pixels.
type CanvasConfig struct {
	NodeSize int `koanf:"node_size" toml:"node_size" validate:"min=4,max=200"`
	NodeGrow int `koanf:"node_grow" toml:"node_grow" validate:"min=0,max=100"`
	Width    int `koanf:"width" toml:"width" validate:"min=100"`
	Height   int `koanf:"height" toml:"height" validate:"min=100"`
}

type EditorConfig struct {
	HeaderHeight int `koanf:"header_height" toml:"header_height" validate:"min=8"`
	PanelDivisor int `koanf:"panel_divisor" toml:"panel_divisor" validate:"min=2,max=10"`
}

// TUIConfig maps terminal cells to pixels.
type TUIConfig struct {
	CellWidth     int `koanf:"cell_width" toml:"cell_width" validate:"min=1"`
	CellHeight    int `koanf:"cell_height" toml:"cell_height" validate:"min=1"`
	DoubleClickMS int `koanf:"double_click_ms" toml:"double_click_ms" validate:"min=50,max=2000"`
}

func Default() *Config {
	return &Config{
		Root:  "Graphs",
		Watch: true,
		Log:   LogConfig{Level: "info"},
		Canvas: CanvasConfig{
			NodeSize: 25,
			NodeGrow: 8,
			Width:    1280,
			Height:   720,
		},
		Editor: EditorConfig{HeaderHeight: 40, PanelDivisor: 3},
		TUI:    TUIConfig{CellWidth: 8, CellHeight: 16, DoubleClickMS: 400},
	}
}

// defaults is Default as a nested koanf map.
func defaults() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"root":  d.Root,
		"graph": d.Graph,
		"watch": d.Watch,
		"log": map[string]interface{}{
			"file":  d.Log.File,
			"level": d.Log.Level,
		},
		"canvas": map[string]interface{}{
			"node_size": d.Canvas.NodeSize,
			"node_grow": d.Canvas.NodeGrow,
			"width":     d.Canvas.Width,
			"height":    d.Canvas.Height,
		},
		"editor": map[string]interface{}{
			"header_height": d.Editor.HeaderHeight,
			"panel_divisor": d.Editor.PanelDivisor,
		},
		"tui": map[string]interface{}{
			"cell_width":      d.TUI.CellWidth,
			"cell_height":     d.TUI.CellHeight,
			"double_click_ms": d.TUI.DoubleClickMS,
		},
	}
}

// Dir is the directory holding config.toml.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "nodenotes")
}

// DefaultPath is where the config file is looked for when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load layers defaults, the TOML file at path (if it exists), NODENOTES_
// environment variables and the flags in f that were set.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kToml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Root = expandPath(cfg.Root)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogFile is where the terminal UI writes its log.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Root, "nodenotes.log")
}

// GraphDir is the directory of the graph to open on start, or "" for the
// chooser. A bare name is looked up under Root.
func (c *Config) GraphDir() string {
	switch {
	case c.Graph == "":
		return ""
	case strings.HasPrefix(c.Graph, "~") || strings.ContainsRune(c.Graph, filepath.Separator):
		return expandPath(c.Graph)
	}
	return filepath.Join(c.Root, c.Graph)
}

// Theme applies the configured metrics to the default look.
func (c *Config) Theme() render.Theme {
	t := render.DefaultTheme()
	t.NodeSide = c.Canvas.NodeSize
	t.NodeGrow = c.Canvas.NodeGrow
	t.HeaderHeight = c.Editor.HeaderHeight
	t.PanelDivisor = c.Editor.PanelDivisor
	t.StatusHeight = c.TUI.CellHeight
	return t
}

// Save writes c as TOML, creating the parent directory.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, c)
}

// Encode writes c to w as TOML.
func Encode(w io.Writer, c *Config) error {
	return toml.NewEncoder(w).Encode(c)
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

type mapProvider map[string]interface{}

func (p mapProvider) Read() (map[string]interface{}, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}
