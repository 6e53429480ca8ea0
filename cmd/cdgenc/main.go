/*
NAME
  main.go

DESCRIPTION
  cdgenc is a command-line encoder that turns a raw RGB-888 video stream
  or a single still image into a CD+Graphics (.cdg) packet stream.

LICENSE
  This software is provided under the MIT license.
*/

// Command cdgenc encodes raw RGB-888 frames, or a single still image,
// into a CD+G subchannel packet stream.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/go-cdg/cdgenc/cdg"
	"github.com/go-cdg/cdgenc/cdgenc"
	"github.com/go-cdg/cdgenc/cdgenc/config"
	"github.com/go-cdg/cdgenc/cdgenc/diagnostics"
	"github.com/go-cdg/cdgenc/framesource"
)

// Logging related constants, matching the layout of this project's other
// command-line tools.
const (
	logPath      = "cdgenc.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = false
)

func main() {
	var (
		input          = flag.String("input", "", "path to input: raw RGB-888 stream, concatenated PPM stream, or a still image")
		output         = flag.String("output", "", "path to output .cdg file")
		width          = flag.Int("width", cdg.DisplayWidth, "frame width in pixels (raw/ppm modes)")
		height         = flag.Int("height", cdg.DisplayHeight, "frame height in pixels (raw/ppm modes)")
		frameRate      = flag.Int("fps", config.DefaultFrameRate, "input frame rate, must divide 300 evenly")
		pixelThreshold = flag.Int("pixel-threshold", config.DefaultPixelThreshold, "minimum per-block pixel difference before a rewrite is scheduled")
		fillFrame      = flag.Bool("fill-frame", false, "input frames already cover the full 300x216 canvas, including border")
		mono           = flag.Bool("mono", false, "force a fixed black/white palette")
		stillImage     = flag.Bool("still", false, "treat input as a single still image rather than a video stream")
		ppmStream      = flag.Bool("ppm", false, "treat input as a concatenated binary PPM stream rather than raw RGB-888")
		revealFlag     = flag.String("reveal", "random", "still-image reveal mode: row, row_rev, col, col_rev, or random")
		chartPath      = flag.String("chart", "", "optional path to write a PNG packet-utilization chart (video mode only)")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *input == "" || *output == "" {
		l.Fatal("both -input and -output are required")
	}

	reveal, err := parseRevealMode(*revealFlag)
	if err != nil {
		l.Fatal("invalid -reveal flag", "error", err)
	}

	cfg := config.Config{
		FrameRate:      *frameRate,
		PixelThreshold: *pixelThreshold,
		FillFrame:      *fillFrame,
		Mono:           *mono,
		RevealMode:     reveal,
		Logger:         l,
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", "error", err)
	}

	in, err := os.Open(*input)
	if err != nil {
		l.Fatal("could not open input", "error", err)
	}
	defer in.Close()

	out, err := os.Create(*output)
	if err != nil {
		l.Fatal("could not create output", "error", err)
	}
	defer out.Close()

	palette, err := defaultPalette()
	if err != nil {
		l.Fatal("could not build default palette", "error", err)
	}

	switch {
	case *stillImage:
		if err := runStillImage(l, cfg, palette, in, out); err != nil {
			l.Fatal("still-image encode failed", "error", err)
		}
	default:
		if err := runVideo(l, cfg, palette, in, out, *width, *height, *ppmStream, *chartPath); err != nil {
			l.Fatal("encode failed", "error", err)
		}
	}
}

func runStillImage(l logging.Logger, cfg config.Config, palette cdg.Palette, in io.Reader, out io.Writer) error {
	img, err := framesource.NewImage(in, l)
	if err != nil {
		return fmt.Errorf("decoding still image: %w", err)
	}
	defer img.Close()

	raw, err := img.Next()
	if err != nil {
		return fmt.Errorf("reading decoded image: %w", err)
	}
	w, h := img.Dims()

	enc, err := cdgenc.NewStillImageEncoder(cfg, palette)
	if err != nil {
		return fmt.Errorf("creating still-image encoder: %w", err)
	}
	return enc.Encode(out, raw, w, h)
}

func runVideo(l logging.Logger, cfg config.Config, palette cdg.Palette, in io.Reader, out io.Writer, width, height int, ppm bool, chartPath string) error {
	var src framesource.Source
	if ppm {
		src = framesource.NewPPMStream(in, width, height, l)
	} else {
		src = framesource.NewRawReader(in, width, height, l)
	}
	defer src.Close()

	drv, err := cdgenc.New(cfg, palette)
	if err != nil {
		return fmt.Errorf("creating driver: %w", err)
	}

	var collector *diagnostics.Collector
	if chartPath != "" {
		collector = diagnostics.NewCollector()
		drv.SetObserver(collector)
	}

	if err := drv.Encode(out, src); err != nil {
		return err
	}

	if collector != nil {
		summary := collector.Summarize()
		l.Debug("encode summary", "frames", summary.Frames, "meanUtilization", summary.MeanUtilization, "stdDevUtilization", summary.StdDevUtilization, "maxStarvedDiff", summary.MaxStarvedDiff)
		if err := collector.WriteUtilizationChart(chartPath, 8*72, 4*72); err != nil {
			l.Warning("could not write utilization chart", "error", err)
		}
	}
	return nil
}

func parseRevealMode(s string) (config.RevealMode, error) {
	switch s {
	case "row":
		return config.RevealRow, nil
	case "row_rev":
		return config.RevealRowReverse, nil
	case "col":
		return config.RevealCol, nil
	case "col_rev":
		return config.RevealColReverse, nil
	case "random", "":
		return config.RevealRandom, nil
	default:
		return 0, fmt.Errorf("unknown reveal mode %q", s)
	}
}

// defaultPalette returns a basic 16-color palette: black, white, and the
// 14 remaining CGA-style colors, used when no caller-supplied palette is
// available. Real use is expected to supply its own palette derived from
// the source material; this exists so the CLI has something usable out
// of the box.
func defaultPalette() (cdg.Palette, error) {
	return cdg.NewPalette([]cdg.Color{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 0},
		{R: 255, G: 0, B: 255},
		{R: 0, G: 255, B: 255},
		{R: 128, G: 0, B: 0},
		{R: 0, G: 128, B: 0},
		{R: 0, G: 0, B: 128},
		{R: 128, G: 128, B: 0},
		{R: 128, G: 0, B: 128},
		{R: 0, G: 128, B: 128},
		{R: 192, G: 192, B: 192},
		{R: 128, G: 128, B: 128},
	})
}
