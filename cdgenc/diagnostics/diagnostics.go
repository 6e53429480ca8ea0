/*
NAME
  diagnostics.go

DESCRIPTION
  diagnostics.go collects per-frame scheduling statistics during an encode
  and summarizes them, purely for operator insight -- nothing here
  influences the packet stream itself.

LICENSE
  This software is provided under the MIT license.
*/

// Package diagnostics aggregates and reports per-frame statistics from a
// cdgenc encode, such as packet utilization and starvation, without
// affecting the encode itself.
package diagnostics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/go-cdg/cdgenc/cdg"
)

// Collector implements cdgenc.Observer, recording one FrameStat per frame
// for later summarization.
type Collector struct {
	stats []cdg.FrameStat
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// OnFrame implements cdgenc.Observer.
func (c *Collector) OnFrame(index int, stat cdg.FrameStat) {
	c.stats = append(c.stats, stat)
}

// Summary holds aggregate statistics over a whole encode.
type Summary struct {
	Frames int

	// MeanUtilization is the mean fraction of each frame's packet budget
	// spent on real Write Font Block packets (Written / (Written+Padded)).
	MeanUtilization float64

	// StdDevUtilization is the standard deviation of per-frame
	// utilization.
	StdDevUtilization float64

	// MeanQueued is the mean number of blocks exceeding the pixel
	// threshold per frame, scheduled or not.
	MeanQueued float64

	// MaxStarvedDiff is the largest diff count observed among blocks that
	// a frame's packet budget could not accommodate, across the whole
	// encode -- a proxy for how often pixel_threshold or frame_rate is
	// too tight for the source material.
	MaxStarvedDiff int
}

// Summarize computes a Summary over all frames recorded so far.
func (c *Collector) Summarize() Summary {
	if len(c.stats) == 0 {
		return Summary{}
	}

	util := make([]float64, len(c.stats))
	queued := make([]float64, len(c.stats))
	var maxStarved int
	for i, s := range c.stats {
		total := s.Written + s.Padded
		if total > 0 {
			util[i] = float64(s.Written) / float64(total)
		}
		queued[i] = float64(s.Queued)
		if s.MaxStarvedDiff > maxStarved {
			maxStarved = s.MaxStarvedDiff
		}
	}

	mean, std := stat.MeanStdDev(util, nil)
	return Summary{
		Frames:            len(c.stats),
		MeanUtilization:   mean,
		StdDevUtilization: std,
		MeanQueued:        stat.Mean(queued, nil),
		MaxStarvedDiff:    maxStarved,
	}
}

// Stats returns a copy of every FrameStat recorded so far, in frame
// order, for callers that want raw per-frame data (e.g. to plot it).
func (c *Collector) Stats() []cdg.FrameStat {
	out := make([]cdg.FrameStat, len(c.stats))
	copy(out, c.stats)
	return out
}
