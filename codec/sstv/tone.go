/*
NAME
  tone.go

DESCRIPTION
  tone.go implements the Tone Synthesizer: deterministic PCM generation for
  a (frequency, duration) pair with phase kept continuous across calls, so
  that consecutive tones never click at their boundary.

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

// toneSynth generates continuous-phase sine tones at a fixed sample rate.
// Construct it with newToneSynth; phase starts at 0. Its zero value has a
// sample rate of 0, for which addTone produces no samples.
type toneSynth struct {
	sampleRate int
	phase      float64
}

func newToneSynth(sampleRate int) *toneSynth {
	return &toneSynth{sampleRate: sampleRate}
}

// addTone appends floor(duration*sampleRate) samples of sin(phase) to out,
// advancing phase by 2*pi*freq/sampleRate per sample, and reduces phase mod
// 2*pi once duration has elapsed. Output samples are always in [-1, 1].
func (t *toneSynth) addTone(out []float32, freq float64, duration time.Duration) []float32 {
	return t.addSamples(out, freq, samplesForDuration(duration, t.sampleRate))
}

// addSamples is addTone with the sample count given directly rather than
// derived from a duration. Callers that must hit an exact, pre-computed
// sample boundary (per-pixel scan segments) use this instead of addTone, so
// that rounding happens once at the boundary computation and not again per
// segment.
func (t *toneSynth) addSamples(out []float32, freq float64, n int) []float32 {
	w := 2 * math.Pi * freq / float64(t.sampleRate)

	for i := 0; i < n; i++ {
		v := math.Sin(t.phase)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out = append(out, float32(v))
		t.phase += w
	}
	t.phase = math.Mod(t.phase, 2*math.Pi)

	return out
}
