// Package config loads the scan-diagrams configuration file.
//
// The file is TOML and every key is optional:
//
//	background   = "#9B9B9B"
//	font_path    = "DejaVuSans.ttf"
//	font_size    = 20
//	jpeg_quality = 90
//	output_dir   = "/tmp/diagrams"
//	ocr_language = "eng"
//	ocr_upscale  = 2
//	log_level    = "info"
//
// The file is looked up at --config, then $SCAN_DIAGRAMS_CONFIG, then
// $XDG_CONFIG_HOME/scan-diagrams/config.toml (~/.config when XDG_CONFIG_HOME
// is unset). Only an explicitly named file has to exist.
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/font"

	"github.com/ironsheep/scan-diagrams/internal/diagram"
	"github.com/ironsheep/scan-diagrams/internal/errors"
	"github.com/ironsheep/scan-diagrams/internal/imaging"
	"github.com/ironsheep/scan-diagrams/internal/palette"
)

const (
	appName = "scan-diagrams"

	// EnvConfig names the configuration file.
	EnvConfig = "SCAN_DIAGRAMS_CONFIG"

	// EnvLogLevel overrides log_level.
	EnvLogLevel = "SCAN_DIAGRAMS_LOG_LEVEL"
)

// Config holds the settings shared by commands and the tool server.
type Config struct {
	// Background is the diagram canvas colour as hex.
	Background string `toml:"background"`

	// FontPath is a TTF file or a bare font name searched in the system
	// font directories. Empty uses the embedded face.
	FontPath string  `toml:"font_path"`
	FontSize float64 `toml:"font_size"`

	JPEGQuality int    `toml:"jpeg_quality"`
	OutputDir   string `toml:"output_dir"`

	OCRLanguage string  `toml:"ocr_language"`
	OCRUpscale  float64 `toml:"ocr_upscale"`

	LogLevel string `toml:"log_level"`

	// Path is the file the configuration was read from, empty when none was.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Background:  "#9B9B9B",
		FontSize:    imaging.DefaultFontSize,
		JPEGQuality: imaging.DefaultJPEGQuality,
		OCRLanguage: "eng",
		OCRUpscale:  2,
		LogLevel:    "info",
	}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration from path, or from the environment or XDG
// location when path is empty, and applies environment overrides.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		}
	}
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	c.Path = path
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := palette.ParseColor(c.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "background")
	}
	if c.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font_size must be positive, got %v", c.FontSize)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "jpeg_quality must be 1-100, got %d", c.JPEGQuality)
	}
	if c.OCRUpscale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ocr_upscale must not be negative, got %v", c.OCRUpscale)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// BackgroundColor returns Background parsed. Call Validate first.
func (c *Config) BackgroundColor() color.NRGBA {
	col, err := palette.ParseColor(c.Background)
	if err != nil {
		return color.NRGBA{155, 155, 155, 255}
	}
	return col
}

// Face loads the configured caption font. It returns nil with no error
// when no font is configured, leaving the renderer default in place; a
// font that cannot be read still yields a usable fallback face alongside
// the error.
func (c *Config) Face() (font.Face, error) {
	if c.FontPath == "" {
		return nil, nil
	}
	return imaging.LoadFace(c.FontPath, c.FontSize)
}

// Style returns the renderer style for this configuration. A font load
// failure is returned with a style that still uses the fallback face.
func (c *Config) Style(skip diagram.SkipFunc) (diagram.Style, error) {
	face, err := c.Face()
	bg := c.BackgroundColor()
	return diagram.Style{
		Background: &bg,
		Face:       face,
		Skip:       skip,
	}, err
}

// Output returns where and how a diagram is written. format may be empty
// for JPEG.
func (c *Config) Output(format string, save bool) (diagram.Output, error) {
	f, err := imaging.ParseFormat(format)
	if err != nil {
		return diagram.Output{}, err
	}
	return diagram.Output{Format: f, Quality: c.JPEGQuality, Dir: c.OutputDir, Save: save}, nil
}
