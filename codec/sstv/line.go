/*
NAME
  line.go

DESCRIPTION
  line.go implements the Line Decoder: per colorFormat cursor advancement
  through a line's scan components, mapping measured frequencies back to
  pixel/chroma values and applying the 5-tap median filter to Robot 36
  chroma.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import "sort"

// decodeState holds the mutable cursor, pixel buffer, and transient
// chroma planes for one decode call. It is never shared across calls or
// goroutines.
type decodeState struct {
	samples       []float32
	sampleRate    int
	mode          Mode
	freqOffset    float64
	autoCalibrate bool
	cursor        int

	pixels []byte // width*lines*4, RGBA.
	vplane []byte // width*lines; V (YUV) or R-Y (PD). Neutral 128 when unwritten.
	uplane []byte // width*lines; U (YUV) or B-Y (PD). Neutral 128 when unwritten.
}

// valueFromFreq maps a measured frequency back to a pixel value using the
// Decoder's calibrated full-range band, the inverse of freqForValue.
func (d *decodeState) valueFromFreq(f float64) byte {
	black := FreqBlack + d.freqOffset
	white := FreqWhite + d.freqOffset
	return clampByte((f - black) / (white - black) * 255)
}

func setPixel(pixels []byte, width, y, x, channel int, v byte) {
	pixels[(y*width+x)*4+channel] = v
}

// scanStrip measures n equal divisions of a total-sample span starting at
// the current cursor, sample-accurately via boundary(), invoking write for
// each. It reports overflow (and stops early) if the cursor runs past the
// end of the sample buffer, per the TimingOverflow error kind.
func (d *decodeState) scanStrip(total, n int, write func(i int, v byte)) bool {
	overflowed := false
	for i := 0; i < n; i++ {
		start := d.cursor + boundary(i, n, total)
		end := d.cursor + boundary(i+1, n, total)
		if start >= len(d.samples) {
			overflowed = true
			write(i, d.valueFromFreq(FreqBlack))
			continue
		}
		if end > len(d.samples) {
			end = len(d.samples)
		}
		freq := detectFrequencyRangeSpan(d.samples, start, end, d.sampleRate)
		write(i, d.valueFromFreq(freq))
	}
	d.cursor += total
	return overflowed
}

// decodeLineRGB decodes one RGB line: sync+porch (skipped), then G, B, R
// channel scans each width wide, separated by separator pulses.
func (d *decodeState) decodeLineRGB(y int) bool {
	m := d.mode
	width := m.Width
	d.cursor += samplesForDuration(m.SyncPulse, d.sampleRate) + samplesForDuration(m.SyncPorch, d.sampleRate)
	total := samplesForDuration(m.ScanTime, d.sampleRate)

	if d.scanStrip(total, width, func(i int, v byte) { setPixel(d.pixels, width, y, i, 1, v) }) {
		return true
	}
	d.cursor += samplesForDuration(m.SeparatorPulse, d.sampleRate)
	if d.scanStrip(total, width, func(i int, v byte) { setPixel(d.pixels, width, y, i, 2, v) }) {
		return true
	}
	d.cursor += samplesForDuration(m.SeparatorPulse, d.sampleRate)
	if d.scanStrip(total, width, func(i int, v byte) { setPixel(d.pixels, width, y, i, 0, v) }) {
		return true
	}
	return false
}

// decodeLineYUV decodes one Robot 36 line: sync+porch, a full-width Y
// scan, the chroma separator+porch (skipped; line parity drives chroma
// plane selection, not the separator frequency), and a half-width chroma
// scan passed through a 5-tap median filter before mapping.
func (d *decodeState) decodeLineYUV(y int) bool {
	m := d.mode
	width := m.Width
	d.cursor += samplesForDuration(m.SyncPulse, d.sampleRate) + samplesForDuration(m.SyncPorch, d.sampleRate)

	yTotal := samplesForDuration(robot36YScan, d.sampleRate)
	if d.scanStrip(yTotal, width, func(i int, v byte) {
		setPixel(d.pixels, width, y, i, 0, v)
		setPixel(d.pixels, width, y, i, 1, v)
		setPixel(d.pixels, width, y, i, 2, v)
	}) {
		return true
	}

	d.cursor += samplesForDuration(robot36ChromaSeparator, d.sampleRate)
	d.cursor += samplesForDuration(robot36ChromaPorch, d.sampleRate)

	halfWidth := width / 2
	chromaTotal := samplesForDuration(robot36ChromaScan, d.sampleRate)
	raw := make([]float64, halfWidth)
	overflowed := false
	for i := 0; i < halfWidth; i++ {
		start := d.cursor + boundary(i, halfWidth, chromaTotal)
		end := d.cursor + boundary(i+1, halfWidth, chromaTotal)
		if start >= len(d.samples) {
			overflowed = true
			raw[i] = FreqBlack
			continue
		}
		if end > len(d.samples) {
			end = len(d.samples)
		}
		raw[i] = detectFrequencyRangeSpan(d.samples, start, end, d.sampleRate)
	}
	d.cursor += chromaTotal

	filtered := medianFilter5(raw)
	plane := d.vplane
	if y%2 != 0 {
		plane = d.uplane
	}
	for i, f := range filtered {
		v := d.valueFromFreq(f)
		plane[y*width+2*i] = v
		plane[y*width+2*i+1] = v
	}
	return overflowed
}

// decodePDPair decodes one PD120 line pair: sync+porch, Y0, R-Y
// (written unchanged into both rows' V-plane), B-Y (written unchanged into
// both rows' U-plane), Y1.
func (d *decodeState) decodePDPair(y0, y1 int) bool {
	m := d.mode
	width := m.Width
	d.cursor += samplesForDuration(m.SyncPulse, d.sampleRate) + samplesForDuration(m.SyncPorch, d.sampleRate)
	total := samplesForDuration(m.ComponentTime, d.sampleRate)

	if d.scanStrip(total, width, func(i int, v byte) {
		setPixel(d.pixels, width, y0, i, 0, v)
		setPixel(d.pixels, width, y0, i, 1, v)
		setPixel(d.pixels, width, y0, i, 2, v)
	}) {
		return true
	}

	rBuf := make([]byte, width)
	if d.scanStrip(total, width, func(i int, v byte) { rBuf[i] = v }) {
		return true
	}
	for i := 0; i < width; i++ {
		d.vplane[y0*width+i] = rBuf[i]
		d.vplane[y1*width+i] = rBuf[i]
	}

	bBuf := make([]byte, width)
	if d.scanStrip(total, width, func(i int, v byte) { bBuf[i] = v }) {
		return true
	}
	for i := 0; i < width; i++ {
		d.uplane[y0*width+i] = bBuf[i]
		d.uplane[y1*width+i] = bBuf[i]
	}

	if d.scanStrip(total, width, func(i int, v byte) {
		setPixel(d.pixels, width, y1, i, 0, v)
		setPixel(d.pixels, width, y1, i, 1, v)
		setPixel(d.pixels, width, y1, i, 2, v)
	}) {
		return true
	}
	return false
}

// medianFilter5 applies a 5-tap median filter over raw, passing the two
// elements at each edge through unfiltered since a full window isn't
// available there.
func medianFilter5(raw []float64) []float64 {
	n := len(raw)
	out := make([]float64, n)
	window := make([]float64, 5)
	for i := 0; i < n; i++ {
		if i < 2 || i >= n-2 {
			out[i] = raw[i]
			continue
		}
		copy(window, raw[i-2:i+3])
		sort.Float64s(window)
		out[i] = window[2]
	}
	return out
}

// resync attempts to re-acquire the next line's sync pulse within +/-10%
// of the expected line period, snapping the cursor to it when found. After
// a full line has been decoded the cursor already sits where that sync is
// expected, so the search is centred on the cursor. It is a no-op unless
// auto-calibration is enabled, and silently keeps the existing cursor when
// no pulse is found, so it never introduces a jump on a clean signal.
func (d *decodeState) resync() {
	if !d.autoCalibrate {
		return
	}
	period := samplesForDuration(d.mode.linePeriod(), d.sampleRate)
	if period <= 0 {
		return
	}
	tolerance := period / 10
	if pos, ok := findSyncPulse(d.samples, d.cursor-tolerance, d.cursor+tolerance, d.freqOffset, d.mode.SyncPulse, d.sampleRate); ok {
		d.cursor = pos
	}
}
