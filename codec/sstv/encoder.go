/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the Encoder: VIS header emission followed by
  per-mode line synthesis, producing a continuous-phase PCM stream from
  an RGBA8888 pixel buffer.

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
	"time"
)

const (
	visLeader    = 300 * time.Millisecond
	visBreak     = 10 * time.Millisecond
	visStartBit  = 30 * time.Millisecond
	visBit       = 30 * time.Millisecond
	visStopBit   = 30 * time.Millisecond
)

// Encoder synthesizes an SSTV PCM stream from a decoded image. Its zero
// value is not usable; construct with NewEncoder.
type Encoder struct {
	sampleRate int
}

// NewEncoder returns an Encoder that synthesizes PCM at sampleRate, e.g.
// 48000.
func NewEncoder(sampleRate int) *Encoder {
	return &Encoder{sampleRate: sampleRate}
}

// Encode synthesizes the VIS header and image body for modeKey and returns
// the resulting mono float32 PCM stream in [-1, 1]. pixels is a row-major
// RGBA8888 buffer of width*height*4 bytes; alpha is ignored. height must be
// at least the mode's line count, and width must equal it exactly: scaling
// the source image to the mode's native resolution is the caller's
// responsibility.
func (e *Encoder) Encode(pixels []byte, width, height int, modeKey string) ([]float32, error) {
	mode, ok := ModeByKey(modeKey)
	if !ok {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown mode key %q", modeKey)}
	}
	if width != mode.Width {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("image width %d does not match %s's native width %d", width, mode.Name, mode.Width)}
	}
	if height < mode.Lines {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("image has %d rows, %s requires at least %d", height, mode.Name, mode.Lines)}
	}
	if len(pixels) < width*height*4 {
		return nil, &InvalidInputError{Reason: "pixel buffer shorter than width*height*4"}
	}

	tone := newToneSynth(e.sampleRate)
	out := e.visHeader(nil, tone, mode)

	switch mode.Format {
	case ColorRGB:
		out = e.encodeRGB(out, tone, pixels, mode)
	case ColorYUV:
		out = e.encodeYUV(out, tone, pixels, mode)
	case ColorPD:
		out = e.encodePD(out, tone, pixels, mode)
	}

	return out, nil
}

// visHeader emits the 300ms leader, 10ms break, 30ms start bit, 7 VIS data
// bits LSB first, even parity bit, and 30ms stop bit, per the Encoder's VIS
// framing.
func (e *Encoder) visHeader(out []float32, tone *toneSynth, mode Mode) []float32 {
	out = tone.addTone(out, FreqVISStart, visLeader)
	out = tone.addTone(out, FreqSync, visBreak)
	out = tone.addTone(out, FreqVISStart, visStartBit)

	for bit := 0; bit < 7; bit++ {
		b := (mode.VISCode >> uint(bit)) & 1
		freq := FreqVISBit0
		if b == 1 {
			freq = FreqVISBit1
		}
		out = tone.addTone(out, freq, visBit)
	}

	parityFreq := FreqVISBit0
	if evenParityBit(mode.VISCode) == 1 {
		parityFreq = FreqVISBit1
	}
	out = tone.addTone(out, parityFreq, visBit)
	out = tone.addTone(out, FreqSync, visStopBit)

	return out
}

// freqForValue maps a full-range 0-255 pixel value onto the 1500-2300 Hz
// tone band. This is the sole frequency/value mapping used by every mode's
// luma, chroma, and RGB channels.
func freqForValue(v byte) float64 {
	return FreqBlack + (float64(v)/255)*(FreqWhite-FreqBlack)
}

func clampByte(f float64) byte {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return byte(math.Round(f))
}

// scanValues emits one tone per element of total equal divisions of a span
// of totalSamples, with boundaries computed via boundary() so that the
// divisions sum exactly to totalSamples regardless of n.
func scanValues(out []float32, tone *toneSynth, n, totalSamples int, valueAt func(i int) byte) []float32 {
	for i := 0; i < n; i++ {
		start := boundary(i, n, totalSamples)
		end := boundary(i+1, n, totalSamples)
		out = tone.addSamples(out, freqForValue(valueAt(i)), end-start)
	}
	return out
}

func pixelAt(pixels []byte, width, y, x, channel int) byte {
	return pixels[(y*width+x)*4+channel]
}

// encodeRGB synthesizes Martin/Scottie-style lines: sync, porch, then
// green, blue, red scans each separated by a separator pulse.
func (e *Encoder) encodeRGB(out []float32, tone *toneSynth, pixels []byte, mode Mode) []float32 {
	width := mode.Width
	scanSamples := samplesForDuration(mode.ScanTime, e.sampleRate)

	for y := 0; y < mode.Lines; y++ {
		out = tone.addTone(out, FreqSync, mode.SyncPulse)
		out = tone.addTone(out, FreqBlack, mode.SyncPorch)
		out = scanValues(out, tone, width, scanSamples, func(x int) byte { return pixelAt(pixels, width, y, x, 1) })
		out = tone.addTone(out, FreqSync, mode.SeparatorPulse)
		out = scanValues(out, tone, width, scanSamples, func(x int) byte { return pixelAt(pixels, width, y, x, 2) })
		out = tone.addTone(out, FreqSync, mode.SeparatorPulse)
		out = scanValues(out, tone, width, scanSamples, func(x int) byte { return pixelAt(pixels, width, y, x, 0) })
	}
	return out
}

// encodeYUV synthesizes Robot 36 lines: sync, porch, a full-width Y scan,
// a parity-flagged separator, a chroma porch, and a half-width chroma scan
// carrying V on even lines and U on odd lines.
func (e *Encoder) encodeYUV(out []float32, tone *toneSynth, pixels []byte, mode Mode) []float32 {
	width := mode.Width
	halfWidth := width / 2
	ySamples := samplesForDuration(robot36YScan, e.sampleRate)
	chromaSamples := samplesForDuration(robot36ChromaScan, e.sampleRate)

	for y := 0; y < mode.Lines; y++ {
		out = tone.addTone(out, FreqSync, mode.SyncPulse)
		out = tone.addTone(out, FreqBlack, mode.SyncPorch)

		out = scanValues(out, tone, width, ySamples, func(x int) byte {
			r := float64(pixelAt(pixels, width, y, x, 0))
			g := float64(pixelAt(pixels, width, y, x, 1))
			b := float64(pixelAt(pixels, width, y, x, 2))
			return clampByte(0.299*r + 0.587*g + 0.114*b)
		})

		// Separator frequency flags which chroma plane follows; the decoder
		// relies on line parity rather than this flag, but the Encoder still
		// emits it for interoperability with other Robot 36 decoders.
		sepFreq := FreqBlack
		if y%2 != 0 {
			sepFreq = FreqWhite
		}
		out = tone.addTone(out, sepFreq, robot36ChromaSeparator)
		out = tone.addTone(out, FreqBlack, robot36ChromaPorch)

		out = scanValues(out, tone, halfWidth, chromaSamples, func(i int) byte {
			x0, x1 := 2*i, 2*i+1
			r := (float64(pixelAt(pixels, width, y, x0, 0)) + float64(pixelAt(pixels, width, y, x1, 0))) / 2
			g := (float64(pixelAt(pixels, width, y, x0, 1)) + float64(pixelAt(pixels, width, y, x1, 1))) / 2
			b := (float64(pixelAt(pixels, width, y, x0, 2)) + float64(pixelAt(pixels, width, y, x1, 2))) / 2
			if y%2 == 0 {
				return clampByte(128 + 0.615*r - 0.51499*g - 0.10001*b) // V
			}
			return clampByte(128 - 0.14713*r - 0.28886*g + 0.436*b) // U
		})
	}
	return out
}

// encodePD synthesizes PD120 line pairs: sync, porch, then Y0, R-Y, B-Y,
// Y1, each at full width and full resolution. R-Y and B-Y are averaged
// across both lines of the pair before transmission.
func (e *Encoder) encodePD(out []float32, tone *toneSynth, pixels []byte, mode Mode) []float32 {
	width := mode.Width
	compSamples := samplesForDuration(mode.ComponentTime, e.sampleRate)

	luma := func(y, x int) float64 {
		r := float64(pixelAt(pixels, width, y, x, 0))
		g := float64(pixelAt(pixels, width, y, x, 1))
		b := float64(pixelAt(pixels, width, y, x, 2))
		return 0.299*r + 0.587*g + 0.114*b
	}
	rDelta := func(y, x int) float64 {
		r := float64(pixelAt(pixels, width, y, x, 0))
		return 0.701 * (r - luma(y, x))
	}
	bDelta := func(y, x int) float64 {
		b := float64(pixelAt(pixels, width, y, x, 2))
		return 0.886 * (b - luma(y, x))
	}

	for y := 0; y < mode.Lines; y += 2 {
		y0, y1 := y, y+1
		if y1 >= mode.Lines {
			y1 = mode.Lines - 1
		}

		out = tone.addTone(out, FreqSync, mode.SyncPulse)
		out = tone.addTone(out, FreqBlack, mode.SyncPorch)

		out = scanValues(out, tone, width, compSamples, func(x int) byte { return clampByte(luma(y0, x)) })
		out = scanValues(out, tone, width, compSamples, func(x int) byte {
			return clampByte(128 + (rDelta(y0, x)+rDelta(y1, x))/2)
		})
		out = scanValues(out, tone, width, compSamples, func(x int) byte {
			return clampByte(128 + (bDelta(y0, x)+bDelta(y1, x))/2)
		})
		out = scanValues(out, tone, width, compSamples, func(x int) byte { return clampByte(luma(y1, x)) })
	}
	return out
}
