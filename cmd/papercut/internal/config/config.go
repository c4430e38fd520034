// Package config loads the optional papercut.yaml session configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/papercut"
)

// Config represents papercut.yaml.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Paper  PaperConfig  `yaml:"paper"`
	View   ViewConfig   `yaml:"view"`
}

// CanvasConfig sizes the rasters.
type CanvasConfig struct {
	Size          int `yaml:"size,omitempty"` // logical model raster side
	Width         int `yaml:"width,omitempty"`
	Height        int `yaml:"height,omitempty"`
	PreviewWidth  int `yaml:"preview_width,omitempty"`
	PreviewHeight int `yaml:"preview_height,omitempty"`
}

// PaperConfig describes the sheet.
type PaperConfig struct {
	Shape      string `yaml:"shape,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Background string `yaml:"background,omitempty"`
	Fold       *int   `yaml:"fold,omitempty"`
	Guides     *bool  `yaml:"guides,omitempty"`
}

// ViewConfig sets the edit canvas transform.
type ViewConfig struct {
	Zoom     float64 `yaml:"zoom,omitempty"`
	PanX     float64 `yaml:"pan_x,omitempty"`
	PanY     float64 `yaml:"pan_y,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty"` // degrees
	Flip     bool    `yaml:"flip,omitempty"`
}

// LoadOptional reads the file at path if it exists. A missing file yields
// an empty Config.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Options converts the paper and canvas sections into session options.
func (c *Config) Options() ([]papercut.SessionOption, error) {
	var opts []papercut.SessionOption
	if c.Canvas.Size > 0 {
		opts = append(opts, papercut.WithCanvasSize(c.Canvas.Size))
	}
	if c.Canvas.PreviewWidth > 0 && c.Canvas.PreviewHeight > 0 {
		opts = append(opts, papercut.WithPreviewSize(c.Canvas.PreviewWidth, c.Canvas.PreviewHeight))
	}
	if c.Paper.Fold != nil {
		opts = append(opts, papercut.WithFoldMode(*c.Paper.Fold))
	}
	if c.Paper.Guides != nil {
		opts = append(opts, papercut.WithGuides(*c.Paper.Guides))
	}
	if s := strings.TrimSpace(c.Paper.Shape); s != "" {
		var shape papercut.PaperShape
		if err := shape.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
			return nil, fmt.Errorf("paper.shape: %w", err)
		}
		opts = append(opts, papercut.WithPaperShape(shape))
	}
	if c.Paper.Color != "" {
		col, err := ParseColor(c.Paper.Color)
		if err != nil {
			return nil, fmt.Errorf("paper.color: %w", err)
		}
		opts = append(opts, papercut.WithPaperColor(col))
	}
	if c.Paper.Background != "" {
		col, err := ParseColor(c.Paper.Background)
		if err != nil {
			return nil, fmt.Errorf("paper.background: %w", err)
		}
		opts = append(opts, papercut.WithBackgroundColor(col))
	}
	return opts, nil
}

// ApplyView sets the configured view on s.
func (c *Config) ApplyView(s *papercut.Session) {
	v := c.View
	if v.Zoom != 0 {
		s.SetZoom(v.Zoom)
	}
	s.SetPan(v.PanX, v.PanY)
	s.SetRotation(v.Rotation * math.Pi / 180)
	s.SetFlip(v.Flip)
}

// ParseColor accepts #RRGGBB, #AARRGGBB, 0xAARRGGBB or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	switch len(hex) {
	case 6:
		return papercut.ARGB(0xFF000000 | uint32(v)), nil
	case 8:
		return papercut.ARGB(uint32(v)), nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

// FormatColor renders c as #AARRGGBB.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
