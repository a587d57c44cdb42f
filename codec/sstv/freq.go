/*
NAME
  freq.go

DESCRIPTION
  freq.go implements the Frequency Estimator: a single-bin Goertzel power
  measurement at an arbitrary (possibly non-integer-bin) frequency, and the
  coarse+fine sweeps used to estimate the dominant frequency in a window.

  Grounded on the Goertzel/envelope-detector shape found in SDR tone
  decoders in this codebase's reference pool (single-frequency recurrence
  fed a block of samples, magnitude read out at the end of the block), but
  rebuilt here as a stateless per-window estimator since SSTV line decoding
  repeatedly probes short, disjoint windows rather than a continuous stream.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import (
	"math"
	"time"
)

// goertzel returns the magnitude of the single-frequency component f within
// samples[start:end], normalized by the window length. k = N*f/sampleRate
// is allowed to be fractional, which trades exact bin alignment for
// accuracy under the short windows SSTV line decoding requires.
func goertzel(samples []float32, start, end int, f float64, sampleRate int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(samples) {
		end = len(samples)
	}
	n := end - start
	if n <= 0 {
		return 0
	}

	k := float64(n) * f / float64(sampleRate)
	w := 2 * math.Pi * k / float64(n)
	cosine := math.Cos(w)
	coeff := 2 * cosine

	var s0, s1, s2 float64
	for i := start; i < end; i++ {
		s0 = coeff*s1 - s2 + float64(samples[i])
		s2 = s1
		s1 = s0
	}

	re := s1 - s2*cosine
	im := s2 * math.Sin(w)
	return math.Sqrt(re*re+im*im) / float64(n)
}

// detectFrequencyRange performs a coarse 1100-2500 Hz sweep in 25 Hz steps
// followed by a fine +/-30 Hz sweep in 1 Hz steps around the coarse winner,
// and returns the frequency of maximum magnitude. Ties resolve to the first
// occurrence (the loop only replaces the best on a strict improvement). An
// undersized window (fewer than 10 samples) returns the benign default of
// FreqBlack, since such windows occur only at stream boundaries.
func detectFrequencyRange(samples []float32, start int, duration time.Duration, sampleRate int) float64 {
	end := start + samplesForDuration(duration, sampleRate)
	return detectFrequencyRangeSpan(samples, start, end, sampleRate)
}

// detectFrequencyRangeSpan is detectFrequencyRange with the window given as
// an explicit [start, end) sample span rather than a duration. Line
// decoding already has sample-accurate boundaries on hand and must not
// re-derive them from a duration a second time.
func detectFrequencyRangeSpan(samples []float32, start, end int, sampleRate int) float64 {
	if end > len(samples) {
		end = len(samples)
	}
	if end-start < 10 {
		return FreqBlack
	}

	bestFreq, bestMag := 1100.0, -1.0
	for f := 1100.0; f <= 2500; f += 25 {
		mag := goertzel(samples, start, end, f, sampleRate)
		if mag > bestMag {
			bestMag = mag
			bestFreq = f
		}
	}

	fineBest, fineMag := bestFreq, -1.0
	for f := bestFreq - 30; f <= bestFreq+30; f++ {
		mag := goertzel(samples, start, end, f, sampleRate)
		if mag > fineMag {
			fineMag = mag
			fineBest = f
		}
	}

	return fineBest
}

// visProbeFreqs is the fixed candidate list probed by detectFrequency for
// sync and VIS tone classification.
var visProbeFreqs = []float64{1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300}

// detectFrequency probes the fixed visProbeFreqs list and, if the winning
// magnitude exceeds 0.05, refines +/-100 Hz around it in 10 Hz steps. Used
// for sync and VIS tone detection, where the candidate tones are known in
// advance and a coarse full-band sweep would be wasted work.
func detectFrequency(samples []float32, start int, duration time.Duration, sampleRate int) float64 {
	end := start + samplesForDuration(duration, sampleRate)
	if end > len(samples) {
		end = len(samples)
	}
	if end-start < 10 {
		return FreqBlack
	}

	bestFreq, bestMag := visProbeFreqs[0], -1.0
	for _, f := range visProbeFreqs {
		mag := goertzel(samples, start, end, f, sampleRate)
		if mag > bestMag {
			bestMag = mag
			bestFreq = f
		}
	}
	if bestMag <= 0.05 {
		return bestFreq
	}

	refined, refinedMag := bestFreq, -1.0
	for f := bestFreq - 100; f <= bestFreq+100; f += 10 {
		mag := goertzel(samples, start, end, f, sampleRate)
		if mag > refinedMag {
			refinedMag = mag
			refined = f
		}
	}
	return refined
}
