/*
NAME
  driver.go

DESCRIPTION
  driver.go implements the encoder driver: it turns a sequence of RGB-888
  frames from a framesource.Source into a CD+G packet stream, handling
  palette emission, the initial preset instructions, per-frame block
  quantization and the shadow-canvas delta schedule.

LICENSE
  This software is provided under the MIT license.
*/

// Package cdgenc drives the CD+G encoding pipeline: it wires a frame
// source, a palette, and the cdg package's instruction encoder and
// scheduler together into a single Encode call.
package cdgenc

import (
	"fmt"
	"io"

	"github.com/go-cdg/cdgenc/cdg"
	"github.com/go-cdg/cdgenc/cdgenc/config"
	"github.com/go-cdg/cdgenc/framesource"
)

// Observer receives diagnostics after each frame is scheduled, without
// affecting the packet stream. A nil Observer is never called.
type Observer interface {
	OnFrame(index int, stat cdg.FrameStat)
}

// Driver encodes a sequence of RGB-888 frames into a CD+G packet stream.
type Driver struct {
	cfg      config.Config
	palette  cdg.Palette
	sched    *cdg.Scheduler
	observer Observer
}

// New returns a Driver configured to quantize frames against palette and
// emit packets under cfg's frame rate and pixel threshold. cfg must
// already have passed Validate.
func New(cfg config.Config, palette cdg.Palette) (*Driver, error) {
	if cfg.Mono {
		mono, err := cdg.NewPalette([]cdg.Color{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}})
		if err != nil {
			return nil, err
		}
		palette = mono
	}
	sched, err := cdg.NewScheduler(palette, cfg.FrameRate, cfg.PixelThreshold)
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, palette: palette, sched: sched}, nil
}

// SetObserver installs an Observer to receive per-frame diagnostics. It
// must be called before Encode.
func (d *Driver) SetObserver(o Observer) { d.observer = o }

// Encode reads every frame from src, in order, and appends the resulting
// CD+G packets to the provided writer. It begins by emitting the global
// palette and the initial Preset Memory and Preset Border instructions,
// then schedules one block of packets per source frame.
func (d *Driver) Encode(w io.Writer, src framesource.Source) error {
	width, height := src.Dims()
	d.cfg.Logger.Debug("starting encode", "width", width, "height", height, "frameRate", d.cfg.FrameRate)

	if err := d.writeHeader(w); err != nil {
		return err
	}

	n := 0
	for {
		raw, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading frame %d: %w", n, err)
		}

		frame, err := d.quantizeFrame(raw, width, height)
		if err != nil {
			return fmt.Errorf("quantizing frame %d: %w", n, err)
		}

		packets, err := d.sched.Schedule(frame)
		if err != nil {
			return fmt.Errorf("scheduling frame %d: %w", n, err)
		}
		if err := writePackets(w, packets); err != nil {
			return fmt.Errorf("writing frame %d: %w", n, err)
		}

		stat := d.sched.LastStats()
		d.cfg.Logger.Debug("frame scheduled", "index", n, "written", stat.Written, "padded", stat.Padded, "queued", stat.Queued, "maxStarvedDiff", stat.MaxStarvedDiff)
		if d.observer != nil {
			d.observer.OnFrame(n, stat)
		}
		n++
	}

	d.cfg.Logger.Debug("encode complete", "frames", n)
	return nil
}

// writeHeader emits the global palette and the initial Preset Memory and
// Preset Border instructions, in that order, as the first four packets
// of the stream (the palette needs two packets, low and high).
func (d *Driver) writeHeader(w io.Writer) error {
	low, high, err := cdg.EncodePalette(d.palette)
	if err != nil {
		return fmt.Errorf("encoding palette: %w", err)
	}
	mem, err := cdg.EncodePresetMemory(uint8(d.cfg.PresetMemoryColor), uint8(d.cfg.PresetMemoryRepeat))
	if err != nil {
		return fmt.Errorf("encoding preset memory: %w", err)
	}
	border, err := cdg.EncodePresetBorder(uint8(d.cfg.PresetBorderColor))
	if err != nil {
		return fmt.Errorf("encoding preset border: %w", err)
	}
	return writePackets(w, []cdg.Packet{low, high, mem, border})
}

// quantizeFrame converts raw RGB-888 bytes into a palette-indexed
// full-canvas cdg.Frame, padding with the border preset color if cfg
// indicates the source only covers the display grid.
func (d *Driver) quantizeFrame(raw []byte, width, height int) (cdg.Frame, error) {
	want := width * height * 3
	if len(raw) != want {
		return cdg.Frame{}, fmt.Errorf("frame is %d bytes, want %d", len(raw), want)
	}

	src := cdg.NewFrame(width, height)
	for i := range src.Pix {
		c := cdg.Color{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2]}
		src.Pix[i] = d.palette.Nearest(c)
	}

	if d.cfg.FillFrame {
		return src, nil
	}

	full := cdg.NewFrame(cdg.FullWidth, cdg.FullHeight)
	for i := range full.Pix {
		full.Pix[i] = uint8(d.cfg.PresetBorderColor)
	}
	x0, y0 := cdg.BorderWidth, cdg.BorderHeight
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			full.Set(x0+x, y0+y, src.At(x, y))
		}
	}
	return full, nil
}

func writePackets(w io.Writer, packets []cdg.Packet) error {
	for _, p := range packets {
		if _, err := w.Write(p[:]); err != nil {
			return err
		}
	}
	return nil
}
