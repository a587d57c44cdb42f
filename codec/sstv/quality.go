/*
NAME
  quality.go

DESCRIPTION
  quality.go implements the Quality Analyzer: per-channel averages,
  brightness, and a verdict table that flags sync/timing failures and
  chroma-decode errors from their color signature alone.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// analyzeQuality computes per-channel means and a verdict over a decoded
// RGBA pixel buffer.
func analyzeQuality(pixels []byte, width, height int) Quality {
	n := width * height
	r := make([]float64, n)
	g := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := i * 4
		r[i] = float64(pixels[idx])
		g[i] = float64(pixels[idx+1])
		b[i] = float64(pixels[idx+2])
	}

	q := Quality{
		RAvg: stat.Mean(r, nil),
		GAvg: stat.Mean(g, nil),
		BAvg: stat.Mean(b, nil),
	}
	q.Brightness = (q.RAvg + q.GAvg + q.BAvg) / 3

	greenDominance := q.GAvg - (q.RAvg+q.BAvg)/2
	imbalance := math.Max(q.RAvg, math.Max(q.GAvg, q.BAvg)) - math.Min(q.RAvg, math.Min(q.GAvg, q.BAvg))

	switch {
	case q.Brightness < 10:
		q.Verdict = Bad
		q.Warnings = append(q.Warnings, "Image is almost entirely black — sync or timing issue")
	case greenDominance > 40:
		q.Verdict = Bad
		q.Warnings = append(q.Warnings, fmt.Sprintf("Heavy green tint (G dominates by %.0f) — chroma decode error", greenDominance))
	case imbalance > 80 && q.Brightness < 40:
		q.Verdict = Warn
		q.Warnings = append(q.Warnings, "Unusual color balance — possible frequency offset")
	case imbalance > 120:
		q.Verdict = Warn
		q.Warnings = append(q.Warnings, "High color imbalance — possible chroma misalignment")
	default:
		q.Verdict = Good
	}
	return q
}
