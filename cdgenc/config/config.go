/*
NAME
  config.go

DESCRIPTION
  config.go holds the configuration settings for a cdgenc encode.

LICENSE
  This software is provided under the MIT license.
*/

// Package config holds the configuration for a cdgenc encoder instance.
package config

import (
	"github.com/ausocean/utils/logging"

	"github.com/go-cdg/cdgenc/cdg"
)

// RevealMode selects the order in which the still-image encoder paints
// blocks.
type RevealMode int

// Reveal modes for the still-image encoder.
const (
	RevealRandom RevealMode = iota // Default: a uniformly random shuffle.
	RevealRow                      // Row ascending, then column ascending.
	RevealRowReverse                // Row descending, then column descending.
	RevealCol                      // Column ascending, then row ascending.
	RevealColReverse                // Column descending, then row descending.
)

// Default configuration values.
const (
	DefaultFrameRate          = 15
	DefaultPixelThreshold     = cdg.DefaultPixelThreshold
	DefaultPresetMemory       = 0
	DefaultPresetBorder       = 1
	DefaultPresetMemoryRepeat = 4
)

// Config provides the parameters relevant to a cdgenc encode. The zero
// value is not ready to use; call Validate, which fills in defaults for
// any field left unset by the caller.
type Config struct {
	// FrameRate is the number of input video frames per second. It must be
	// a positive divisor of cdg.PacketsPerSecond. Zero defaults to
	// DefaultFrameRate.
	FrameRate int

	// PixelThreshold is the minimum per-block pixel-difference count
	// required before a block is scheduled for rewrite. Zero defaults to
	// DefaultPixelThreshold. Validate leaves a negative value as it is,
	// but cdg.NewScheduler treats any value <= 0 as DefaultPixelThreshold,
	// so the threshold cannot be disabled; 1 is the smallest threshold
	// that takes effect.
	PixelThreshold int

	// FillFrame indicates whether input frames cover the full canvas grid
	// (cdg.FullGridCols x cdg.FullGridRows) rather than just the display
	// grid. When false, the driver pads incoming display-sized frames
	// with a border of palette index PresetBorderColor before
	// partitioning.
	FillFrame bool

	// Mono forces the palette to exactly {black, white}; any palette
	// passed to the driver is ignored.
	Mono bool

	// PresetMemoryColor and PresetBorderColor select the palette indices
	// used for the initial Preset Memory and Preset Border instructions.
	// Both must be valid indices into the palette in use. Zero means
	// "unset" and defaults to DefaultPresetMemory / DefaultPresetBorder
	// respectively, the same convention PixelThreshold uses above. A
	// caller that specifically wants palette index 0 for PresetBorderColor
	// (whose default is non-zero) should pass -1, which Validate resolves
	// to 0.
	PresetMemoryColor int
	PresetBorderColor int

	// PresetMemoryRepeat is the repeat count sent with the initial Preset
	// Memory instruction. Zero means "unset" and defaults to
	// DefaultPresetMemoryRepeat; pass -1 for an explicit repeat count of
	// zero.
	PresetMemoryRepeat int

	// RevealMode selects the still-image encoder's block paint order.
	RevealMode RevealMode

	// Logger receives structured log output from the encoder, scheduler,
	// and frame sources. Required; Validate returns an error if nil.
	Logger logging.Logger
}

// Validate fills in zero-valued fields with their defaults and checks the
// remaining fields for consistency. It must be called once before the
// Config is passed to a driver.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errNoLogger
	}
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
		c.Logger.Debug("frame rate unset, defaulting", "frameRate", DefaultFrameRate)
	}
	if _, err := cdg.PacketsPerFrame(c.FrameRate); err != nil {
		return err
	}
	if c.PixelThreshold == 0 {
		c.PixelThreshold = DefaultPixelThreshold
		c.Logger.Debug("pixel threshold unset, defaulting", "pixelThreshold", DefaultPixelThreshold)
	}
	switch {
	case c.PresetMemoryColor == 0:
		c.PresetMemoryColor = DefaultPresetMemory
	case c.PresetMemoryColor < 0:
		c.PresetMemoryColor = 0
	}
	switch {
	case c.PresetBorderColor == 0:
		c.PresetBorderColor = DefaultPresetBorder
		c.Logger.Debug("preset border color unset, defaulting", "presetBorderColor", DefaultPresetBorder)
	case c.PresetBorderColor < 0:
		c.PresetBorderColor = 0
	}
	switch {
	case c.PresetMemoryRepeat == 0:
		c.PresetMemoryRepeat = DefaultPresetMemoryRepeat
		c.Logger.Debug("preset memory repeat unset, defaulting", "presetMemoryRepeat", DefaultPresetMemoryRepeat)
	case c.PresetMemoryRepeat < 0:
		c.PresetMemoryRepeat = 0
	}
	return nil
}
