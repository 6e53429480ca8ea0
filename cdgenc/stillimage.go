/*
NAME
  stillimage.go

DESCRIPTION
  stillimage.go implements the still-image encoder: a one-shot paint of a
  single frame with no packet budget, no NOP padding and no shadow canvas,
  ordering blocks by one of five reveal modes to produce a wipe-style
  animation as the decoder renders them.

LICENSE
  This software is provided under the MIT license.
*/

package cdgenc

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/go-cdg/cdgenc/cdg"
	"github.com/go-cdg/cdgenc/cdgenc/config"
)

// StillImageEncoder encodes a single frame as a one-shot paint, rather
// than a scheduled delta stream.
type StillImageEncoder struct {
	cfg     config.Config
	palette cdg.Palette
	rng     *rand.Rand
}

// NewStillImageEncoder returns a StillImageEncoder using cfg and palette.
// cfg must already have passed Validate.
func NewStillImageEncoder(cfg config.Config, palette cdg.Palette) (*StillImageEncoder, error) {
	if cfg.Mono {
		mono, err := cdg.NewPalette([]cdg.Color{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}})
		if err != nil {
			return nil, err
		}
		palette = mono
	}
	return &StillImageEncoder{cfg: cfg, palette: palette, rng: rand.New(rand.NewSource(1))}, nil
}

// SeedRandom sets the seed used for RevealRandom ordering, so that
// repeated encodes of the same image with the same seed produce an
// identical byte stream.
func (e *StillImageEncoder) SeedRandom(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Encode quantizes raw (a single width x height RGB-888 frame) against
// e's palette, then writes the palette, the initial presets, and one
// Write Font Block packet per block of the frame, ordered per e.cfg's
// RevealMode.
func (e *StillImageEncoder) Encode(w io.Writer, raw []byte, width, height int) error {
	want := width * height * 3
	if len(raw) != want {
		return fmt.Errorf("image is %d bytes, want %d", len(raw), want)
	}

	e.cfg.Logger.Debug("starting still-image encode", "width", width, "height", height, "revealMode", e.cfg.RevealMode)

	low, high, err := cdg.EncodePalette(e.palette)
	if err != nil {
		return fmt.Errorf("encoding palette: %w", err)
	}
	mem, err := cdg.EncodePresetMemory(uint8(e.cfg.PresetMemoryColor), uint8(e.cfg.PresetMemoryRepeat))
	if err != nil {
		return fmt.Errorf("encoding preset memory: %w", err)
	}
	border, err := cdg.EncodePresetBorder(uint8(e.cfg.PresetBorderColor))
	if err != nil {
		return fmt.Errorf("encoding preset border: %w", err)
	}
	if err := writePackets(w, []cdg.Packet{low, high, mem, border}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	src := cdg.NewFrame(width, height)
	for i := range src.Pix {
		c := cdg.Color{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2]}
		src.Pix[i] = e.palette.Nearest(c)
	}

	grid, err := cdg.Partition(src, e.palette)
	if err != nil {
		return fmt.Errorf("partitioning image: %w", err)
	}

	order := e.blockOrder(len(grid), len(grid[0]))
	for _, rc := range order {
		pb := grid[rc.row][rc.col]
		pkt, err := cdg.EncodeBlock(pb.Block, pb.Fg, pb.Bg, rc.row, rc.col)
		if err != nil {
			return fmt.Errorf("encoding block (%d,%d): %w", rc.row, rc.col, err)
		}
		if _, err := w.Write(pkt[:]); err != nil {
			return fmt.Errorf("writing block (%d,%d): %w", rc.row, rc.col, err)
		}
	}

	e.cfg.Logger.Debug("still-image encode complete", "blocks", len(order))
	return nil
}

type rowCol struct{ row, col int }

// blockOrder returns the (row, col) visiting order for a rows x cols
// grid, per e.cfg.RevealMode.
func (e *StillImageEncoder) blockOrder(rows, cols int) []rowCol {
	order := make([]rowCol, 0, rows*cols)

	switch e.cfg.RevealMode {
	case config.RevealRow:
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				order = append(order, rowCol{row, col})
			}
		}
	case config.RevealRowReverse:
		for row := rows - 1; row >= 0; row-- {
			for col := cols - 1; col >= 0; col-- {
				order = append(order, rowCol{row, col})
			}
		}
	case config.RevealCol:
		for col := 0; col < cols; col++ {
			for row := 0; row < rows; row++ {
				order = append(order, rowCol{row, col})
			}
		}
	case config.RevealColReverse:
		for col := cols - 1; col >= 0; col-- {
			for row := rows - 1; row >= 0; row-- {
				order = append(order, rowCol{row, col})
			}
		}
	default: // config.RevealRandom
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				order = append(order, rowCol{row, col})
			}
		}
		e.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	return order
}
