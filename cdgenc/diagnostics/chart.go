/*
NAME
  chart.go

DESCRIPTION
  chart.go renders a Collector's per-frame packet utilization as a PNG line
  chart, entirely optional tooling for inspecting an encode after the
  fact.

LICENSE
  This software is provided under the MIT license.
*/

package diagnostics

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteUtilizationChart renders a PNG line chart of per-frame packet
// utilization (written packets / packet budget) to path, width x height
// points in size.
func (c *Collector) WriteUtilizationChart(path string, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = "packet utilization per frame"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "utilization"

	pts := make(plotter.XYs, len(c.stats))
	for i, s := range c.stats {
		total := s.Written + s.Padded
		var u float64
		if total > 0 {
			u = float64(s.Written) / float64(total)
		}
		pts[i].X = float64(i)
		pts[i].Y = u
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building utilization line: %w", err)
	}
	p.Add(line)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving utilization chart to %s: %w", path, err)
	}
	return nil
}
