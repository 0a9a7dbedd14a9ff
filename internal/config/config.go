package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Policy names accepted by the selector registry.
const (
	PolicyUniform       = "uniform"
	PolicyHeadCap       = "head_cap"
	PolicyMotionWindow  = "motion_window"
	PolicyExplicitRange = "explicit_range"
)

type Config struct {
	InputPath  string
	OutputPath string

	FrameCount int // K, target number of frames
	Cols       int // atlas columns
	CellWidth  int // 0 = native size or Scale
	CellHeight int
	Scale      float64 // cell size as a fraction of native size; 0 = off
	Padding    int     // gap between cells in pixels

	Policy     string
	HeadCap    int // head_cap: prefix length M
	RangeStart int // explicit_range
	RangeEnd   int

	FPSHint int

	// Repack: the input is an existing atlas instead of a frame directory.
	Repack      bool
	RepackMeta  string // sidecar path; "" = <input>.yaml
	RepackCols  int    // explicit geometry when no sidecar exists
	RepackCellW int
	RepackCellH int
	RepackCount int

	AnalyzeOnly bool

	MaxPixels int64 // decoded pixel area cap; 0 = disabled
}

// Env carries overrides honored outside the flag surface.
type Env struct {
	MaxPixels int64 `env:"SPRITEPACK_MAX_PIXELS"`
	NoRlimit  bool  `env:"SPRITEPACK_NO_RLIMIT"`
}

func ParseEnv() (Env, error) {
	return env.ParseAs[Env]()
}

// Validate reports parameter errors before any I/O happens.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if !c.AnalyzeOnly && c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Cols <= 0 {
		return fmt.Errorf("columns must be positive, got %d", c.Cols)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", c.Padding)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale must not be negative, got %g", c.Scale)
	}
	if c.Scale > 0 && (c.CellWidth > 0 || c.CellHeight > 0) {
		return fmt.Errorf("scale and explicit cell size are mutually exclusive")
	}
	if (c.CellWidth > 0) != (c.CellHeight > 0) {
		return fmt.Errorf("cell width and height must be set together")
	}
	if c.CellWidth < 0 || c.CellHeight < 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	}

	switch c.Policy {
	case PolicyUniform, PolicyMotionWindow:
		if c.FrameCount <= 0 {
			return fmt.Errorf("frame count must be positive, got %d", c.FrameCount)
		}
	case PolicyHeadCap:
		if c.FrameCount <= 0 {
			return fmt.Errorf("frame count must be positive, got %d", c.FrameCount)
		}
		if c.HeadCap <= 0 {
			return fmt.Errorf("head cap must be positive, got %d", c.HeadCap)
		}
	case PolicyExplicitRange:
		if c.RangeStart < 0 || c.RangeEnd < c.RangeStart {
			return fmt.Errorf("invalid frame range [%d, %d]", c.RangeStart, c.RangeEnd)
		}
	default:
		return fmt.Errorf("unknown selection policy: %s", c.Policy)
	}

	return nil
}
