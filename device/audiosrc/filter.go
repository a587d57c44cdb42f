/*
NAME
  filter.go

DESCRIPTION
  filter.go band-limits loaded samples to the SSTV tone range ahead of
  Goertzel estimation, using the same FIR band-pass machinery codec/pcm
  already built for ALSA capture pipelines. This is an optional robustness
  pass, not part of the core decode path; sstvsession enables it per
  session configuration.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audiosrc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ausocean/sstv/codec/pcm"
)

// bandTaps is the FIR filter length used for band-limiting. Higher taps
// give a sharper band edge at the cost of more group delay.
const bandTaps = 127

// toneBandLow and toneBandHigh bound the SSTV tone range (1500-2300 Hz
// active picture range plus VIS/sync tones down to 1100 Hz and up to
// 2500 Hz of headroom).
const (
	toneBandLow  = 1100.0
	toneBandHigh = 2500.0
)

// BandLimit band-passes samples to the SSTV tone range at sampleRate,
// discarding the filter's trailing group delay so the result stays the
// same length as the input.
func BandLimit(samples []float32, sampleRate int) ([]float32, error) {
	if len(samples) == 0 {
		return samples, nil
	}

	format := pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: uint(sampleRate), Channels: 1}
	filter, err := pcm.NewBandPass(toneBandLow, toneBandHigh, format, bandTaps)
	if err != nil {
		return nil, fmt.Errorf("audiosrc: could not build band-pass filter: %w", err)
	}

	in := floatsToS16LE(samples)
	out, err := filter.Apply(pcm.Buffer{Format: format, Data: in})
	if err != nil {
		return nil, fmt.Errorf("audiosrc: band-pass filter failed: %w", err)
	}

	filtered := s16LEToFloats(out)
	if len(filtered) > len(samples) {
		filtered = filtered[:len(samples)]
	}
	return filtered, nil
}

func floatsToS16LE(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(float64(v)*math.MaxInt16)))
	}
	return out
}

func s16LEToFloats(b []byte) []float32 {
	n := len(b) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(int16(binary.LittleEndian.Uint16(b[i*2:]))) / 32768
	}
	return out
}
