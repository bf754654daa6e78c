package animator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/scenekit"
)

// ErrUnknownFormat is returned by LoadConfig for files that are neither
// TOML nor YAML.
var ErrUnknownFormat = errors.New("animator: unknown config format")

// Format is a config file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Vec2 is a point in scene units.
type Vec2 struct {
	X float32 `toml:"x" yaml:"x"`
	Y float32 `toml:"y" yaml:"y"`
}

// StyleOverride restyles the bytes [Start, End) of the text. A zero Size or
// a nil Color leaves that attribute alone.
type StyleOverride struct {
	Start int            `toml:"start" yaml:"start"`
	End   int            `toml:"end" yaml:"end"`
	Size  float32        `toml:"size,omitempty" yaml:"size,omitempty"`
	Color *scenekit.RGBA `toml:"color,omitempty" yaml:"color,omitempty"`
}

// Background is the rectangle drawn first on every frame. The same
// rectangle is the primitive for the animated rectangles and the layer clip.
type Background struct {
	Width  float32       `toml:"width" yaml:"width"`
	Height float32       `toml:"height" yaml:"height"`
	Color  scenekit.RGBA `toml:"color" yaml:"color"`
}

// Line is the rotating line.
type Line struct {
	Center Vec2          `toml:"center" yaml:"center"`
	Length float32       `toml:"length" yaml:"length"`
	Width  float32       `toml:"width" yaml:"width"`
	Color  scenekit.RGBA `toml:"color" yaml:"color"`
	// DegreesPerFrame is the rotation speed.
	DegreesPerFrame float32 `toml:"degrees_per_frame" yaml:"degrees_per_frame"`
}

// Rects holds the colors of the three rectangles.
type Rects struct {
	Outer  scenekit.RGBA `toml:"outer" yaml:"outer"`
	First  scenekit.RGBA `toml:"first" yaml:"first"`
	Second scenekit.RGBA `toml:"second" yaml:"second"`
}

// Config describes the animation content.
type Config struct {
	Text       string          `toml:"text" yaml:"text"`
	Size       float32         `toml:"size" yaml:"size"`
	Color      scenekit.RGBA   `toml:"color" yaml:"color"`
	Locale     string          `toml:"locale,omitempty" yaml:"locale,omitempty"`
	Styles     []StyleOverride `toml:"styles" yaml:"styles"`
	TextOrigin Vec2            `toml:"text_origin" yaml:"text_origin"`
	Background Background      `toml:"background" yaml:"background"`
	Line       Line            `toml:"line" yaml:"line"`
	Rects      Rects           `toml:"rects" yaml:"rects"`
}

// DefaultText is the text of the default config.
const DefaultText = "Hello piet-gpu! ഹലോ ਸਤ ਸ੍ਰੀ ਅਕਾਲ مرحبا!"

// DefaultConfig returns the reference animation.
func DefaultConfig() Config {
	yellow := scenekit.Yellow
	return Config{
		Text:  DefaultText,
		Size:  34,
		Color: scenekit.White,
		Styles: []StyleOverride{
			{Start: 6, End: 10, Size: 48, Color: &yellow},
		},
		TextOrigin: Vec2{X: 100, Y: 400},
		Background: Background{
			Width:  1000,
			Height: 1000,
			Color:  scenekit.RGB8(128, 128, 128),
		},
		Line: Line{
			Center:          Vec2{X: 500, Y: 500},
			Length:          400,
			Width:           5,
			Color:           scenekit.RGB8(128, 0, 0),
			DegreesPerFrame: 1,
		},
		Rects: Rects{
			Outer:  scenekit.Red,
			First:  scenekit.Blue,
			Second: scenekit.Green,
		},
	}
}

// Validate reports the first field that cannot be drawn.
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("animator: size must be positive, got %v", c.Size)
	case c.Background.Width <= 0 || c.Background.Height <= 0:
		return fmt.Errorf("animator: background must be positive, got %vx%v",
			c.Background.Width, c.Background.Height)
	case c.Line.Width < 0:
		return fmt.Errorf("animator: line width must not be negative, got %v", c.Line.Width)
	}
	for i, s := range c.Styles {
		if s.Start < 0 || s.End < s.Start {
			return fmt.Errorf("animator: style %d has invalid range [%d, %d)", i, s.Start, s.End)
		}
		if s.Size < 0 {
			return fmt.Errorf("animator: style %d has negative size %v", i, s.Size)
		}
	}
	return nil
}

// ParseConfig decodes data on top of DefaultConfig. Unknown keys are
// rejected.
func ParseConfig(data []byte, format Format) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return Config{}, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("animator: decode %v config: %w", format, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) config.
func LoadConfig(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("animator: load config: %w", err)
	}
	return ParseConfig(data, format)
}
