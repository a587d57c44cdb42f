/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the Decoder Orchestrator: ties the VIS Detector,
  Sync Finder, Frequency Offset Estimator, Line Decoder, Color
  Reconstructor and Quality Analyzer together into a single Decode call.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import "time"

// Frame is the result of a successful Decode call: the RGBA pixel buffer
// and the diagnostics record describing how it was obtained.
type Frame struct {
	Pixels      []byte
	Width       int
	Height      int
	Diagnostics Diagnostics
}

// Decode demodulates an SSTV signal into a frame. autoCalibrate enables
// the Frequency Offset Estimator and per-line resync; disabling it trusts
// the VIS header's measured shift (or zero) for the whole decode.
//
// Decode never returns InvalidInput; the only error it surfaces is
// ErrNoSyncFound, since a bad mode key has no meaning on the decode side
// and a malformed WAV is rejected earlier, at the WAVE Reader.
func Decode(samples []float32, sampleRate int, autoCalibrate bool) (*Frame, error) {
	start := time.Now()

	vis := DetectMode(samples, sampleRate)
	mode := vis.Mode
	width, lines := mode.Width, mode.Lines

	pixels := make([]byte, width*lines*4)
	for i := 3; i < len(pixels); i += 4 {
		pixels[i] = 255
	}

	var vplane, uplane []byte
	if mode.Format == ColorYUV || mode.Format == ColorPD {
		vplane = make([]byte, width*lines)
		uplane = make([]byte, width*lines)
		for i := range vplane {
			vplane[i] = 128
			uplane[i] = 128
		}
	}

	syncPos, ok := firstSync(samples, vis.VISEndPos, mode, vis.FreqShift, sampleRate)
	if !ok {
		return nil, ErrNoSyncFound
	}

	freqOffset := vis.FreqShift
	autoCalibrated := false
	if autoCalibrate {
		if off := estimateFreqOffset(samples, syncPos, mode, sampleRate); off != 0 {
			freqOffset = off
			autoCalibrated = true
		}
	}

	d := &decodeState{
		samples: samples, sampleRate: sampleRate, mode: mode,
		freqOffset: freqOffset, autoCalibrate: autoCalibrate, cursor: syncPos,
		pixels: pixels, vplane: vplane, uplane: uplane,
	}

	var warnings []string
	switch mode.Format {
	case ColorRGB:
		for y := 0; y < mode.Lines; y++ {
			if y > 0 {
				d.resync()
			}
			if d.decodeLineRGB(y) {
				warnings = append(warnings, (&TimingOverflowError{Line: y}).Error())
				break
			}
		}
	case ColorYUV:
		for y := 0; y < mode.Lines; y++ {
			if y > 0 {
				d.resync()
			}
			if d.decodeLineYUV(y) {
				warnings = append(warnings, (&TimingOverflowError{Line: y}).Error())
				break
			}
		}
		reconstructYUV(d)
	case ColorPD:
		for y := 0; y < mode.Lines; y += 2 {
			y1 := y + 1
			if y1 >= mode.Lines {
				y1 = mode.Lines - 1
			}
			if y > 0 {
				d.resync()
			}
			if d.decodePDPair(y, y1) {
				warnings = append(warnings, (&TimingOverflowError{Line: y}).Error())
				break
			}
		}
		reconstructPD(d)
	}

	quality := analyzeQuality(pixels, width, lines)

	diag := Diagnostics{
		ModeName:       mode.Name,
		VISCode:        vis.VISCode,
		SampleRate:     sampleRate,
		Duration:       time.Duration(int64(len(samples)) * int64(time.Second) / int64(sampleRate)),
		FreqOffset:     freqOffset,
		AutoCalibrated: autoCalibrated,
		FirstSyncPos:   syncPos,
		DecodeTime:     time.Since(start),
		Quality:        quality,
		Warnings:       append(warnings, quality.Warnings...),
	}
	return &Frame{Pixels: pixels, Width: width, Height: lines, Diagnostics: diag}, nil
}

// firstSync acquires the first line's sync pulse per the Decoder
// Orchestrator's widening forward search: within one line period of
// visEndPos, then three, then the whole buffer. It never searches
// backward from visEndPos, since the pre-VIS data and stop bits sit at
// 1200 Hz and would false-match the sync frequency.
func firstSync(samples []float32, visEndPos int, mode Mode, freqShift float64, sampleRate int) (int, bool) {
	line := samplesForDuration(mode.linePeriod(), sampleRate)
	if pos, ok := findSyncPulse(samples, visEndPos, visEndPos+line, freqShift, mode.SyncPulse, sampleRate); ok {
		return pos, true
	}
	if pos, ok := findSyncPulse(samples, visEndPos, visEndPos+3*line, freqShift, mode.SyncPulse, sampleRate); ok {
		return pos, true
	}
	return findSyncPulse(samples, 0, len(samples), freqShift, mode.SyncPulse, sampleRate)
}
