// Package config loads the fluidcard command's configuration file.
//
// Settings come from, in increasing order of precedence, the built-in
// defaults, the YAML file and FLUIDCARD_* environment variables. Nested keys
// map to variables by replacing dots with underscores, so card.expand_duration
// is FLUIDCARD_CARD_EXPAND_DURATION.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"honnef.co/go/fluidcard"
)

// EnvPrefix prefixes every environment variable that overrides a setting.
const EnvPrefix = "FLUIDCARD"

const (
	defaultLogLevel    = "info"
	defaultFPS         = 60
	defaultScale       = 2
	defaultSupersample = 1
	defaultServerAddr  = "127.0.0.1:3000"
	defaultStoreName   = "recordings.db"
)

// File is the configuration file.
type File struct {
	Log    Log              `mapstructure:"log" yaml:"log"`
	Card   fluidcard.Config `mapstructure:"card" yaml:"card"`
	Render Render           `mapstructure:"render" yaml:"render"`
	Server Server           `mapstructure:"server" yaml:"server"`
	Store  Store            `mapstructure:"store" yaml:"store"`

	// Path is the file the configuration was read from, if any.
	Path string `mapstructure:"-" yaml:"-"`
}

type Log struct {
	// Level is one of debug, info, warn and error.
	Level string `mapstructure:"level" yaml:"level"`
}

// Render configures sampled output.
type Render struct {
	FPS         float64 `mapstructure:"fps" yaml:"fps"`
	Scale       float64 `mapstructure:"scale" yaml:"scale"`
	Supersample int     `mapstructure:"supersample" yaml:"supersample"`
	// Width overrides the card width. 0 uses card.content_width.
	Width float64 `mapstructure:"width" yaml:"width"`
	// Workers bounds the number of frames rasterized at once. 0 uses one
	// worker per CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type Store struct {
	// Path is the SQLite database recordings are kept in.
	Path string `mapstructure:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Log:  Log{Level: defaultLogLevel},
		Card: fluidcard.DefaultConfig(),
		Render: Render{
			FPS:         defaultFPS,
			Scale:       defaultScale,
			Supersample: defaultSupersample,
		},
		Server: Server{Addr: defaultServerAddr},
		Store:  Store{Path: defaultStoreName},
	}
}

// Dir returns the directory the configuration file lives in by default.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(dir, "fluidcard"), nil
}

// DefaultPath returns the default location of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// Load reads the configuration. An empty path selects [DefaultPath], which
// may be missing; an explicitly named file must exist.
func Load(path string) (File, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || (!errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist)) {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		cfg.Path = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) && cfg.Path != "" {
		cfg.Store.Path = filepath.Join(filepath.Dir(cfg.Path), cfg.Store.Path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setDefaults registers every scalar setting so that environment variables
// can override it.
func setDefaults(v *viper.Viper, f File) {
	v.SetDefault("log.level", f.Log.Level)

	c := f.Card
	v.SetDefault("card.expand_duration", c.ExpandDuration)
	v.SetDefault("card.collapse_duration", c.CollapseDuration)
	v.SetDefault("card.corner_radius", c.CornerRadius)
	v.SetDefault("card.top_height", c.TopHeight)
	v.SetDefault("card.gap", c.Gap)
	v.SetDefault("card.bottom_height", c.BottomHeight)
	v.SetDefault("card.collapsed_bottom_height", c.CollapsedBottomHeight)
	v.SetDefault("card.content_width", c.ContentWidth)
	v.SetDefault("card.top_inset", c.TopInset)
	v.SetDefault("card.bottom_inset", c.BottomInset)
	v.SetDefault("card.min_hole_separation", c.MinHoleSeparation)
	v.SetDefault("card.dimple_base", c.DimpleBase)
	v.SetDefault("card.hole_recess", c.HoleRecess)
	v.SetDefault("card.lift_distance", c.LiftDistance)

	v.SetDefault("render.fps", f.Render.FPS)
	v.SetDefault("render.scale", f.Render.Scale)
	v.SetDefault("render.supersample", f.Render.Supersample)
	v.SetDefault("render.width", f.Render.Width)
	v.SetDefault("render.workers", f.Render.Workers)
	v.SetDefault("server.addr", f.Server.Addr)
	v.SetDefault("store.path", f.Store.Path)
}

// Validate checks every section. Errors in the card section wrap
// [fluidcard.ErrInvalidConfiguration].
func (f File) Validate() error {
	if _, err := f.Log.SlogLevel(); err != nil {
		return err
	}
	if err := f.Card.Validate(); err != nil {
		return err
	}
	r := f.Render
	if !(r.FPS > 0) || r.FPS > fluidcard.MaxSampleRate {
		return fmt.Errorf("invalid render.fps: %g", r.FPS)
	}
	if !(r.Scale > 0) {
		return fmt.Errorf("invalid render.scale: %g", r.Scale)
	}
	if r.Supersample < 0 || r.Supersample > 16 {
		return fmt.Errorf("invalid render.supersample: %d", r.Supersample)
	}
	if !(r.Width >= 0) || r.Width > fluidcard.MaxWidth {
		return fmt.Errorf("invalid render.width: %g", r.Width)
	}
	if r.Workers < 0 {
		return fmt.Errorf("invalid render.workers: %d", r.Workers)
	}
	return nil
}

// SlogLevel parses the log level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return lvl, nil
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	var n yaml.Node
	if err := n.Encode(f); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	n.HeadComment = "fluidcard configuration"

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&n); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	return enc.Close()
}

// WriteFile writes f to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func WriteFile(path string, f File, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	fd, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(fd, f); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
