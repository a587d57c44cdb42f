//go:build withplot
// +build withplot

/*
DESCRIPTION
  Renders a waveform PNG marking the decoded frame's first detected sync
  pulse, as a diagnostic aid for marginal decodes. Built only with
  -tags withplot, since gonum.org/v1/gonum/plot pulls in font/SVG
  dependencies ordinary builds don't need.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/sstv/codec/sstv"
)

// plotDownsample bounds the number of points rendered, since a multi-second
// recording at 48kHz would otherwise produce an unreadable, enormous plot.
const plotDownsample = 2000

// plotWaveform loads path via container, downsamples its waveform, and
// renders it to out as a PNG with a vertical marker at diag's first sync
// position.
func plotWaveform(path string, container int, diag sstv.Diagnostics, out string) error {
	samples, _, err := loadSource(path, container)
	if err != nil {
		return fmt.Errorf("sstvdec: could not reload recording for plot: %w", err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("sstvdec: empty recording, nothing to plot")
	}

	step := len(samples) / plotDownsample
	if step < 1 {
		step = 1
	}

	pts := make(plotter.XYs, 0, len(samples)/step+1)
	for i := 0; i < len(samples); i += step {
		pts = append(pts, plotter.XY{X: float64(i), Y: float64(samples[i])})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s waveform (%s)", diag.ModeName, diag.Quality.Verdict)
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "amplitude"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("sstvdec: could not build waveform line: %w", err)
	}
	p.Add(line)

	syncX := float64(diag.FirstSyncPos)
	marker, err := plotter.NewLine(plotter.XYs{{X: syncX, Y: -1}, {X: syncX, Y: 1}})
	if err != nil {
		return fmt.Errorf("sstvdec: could not build sync marker: %w", err)
	}
	p.Add(marker)
	p.Legend.Add("waveform", line)
	p.Legend.Add("first sync", marker)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, out); err != nil {
		return fmt.Errorf("sstvdec: could not save plot: %w", err)
	}
	return nil
}
