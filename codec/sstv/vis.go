/*
NAME
  vis.go

DESCRIPTION
  vis.go implements the VIS Detector: scans for the VIS header's
  leader/break/start-bit/data-bits/parity/stop sequence, with a
  timing-based fallback and a default-mode fallback for signals where
  neither strategy matches.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import (
	"math/bits"
	"time"
)

const (
	visSearchWindow  = 60 * time.Second
	visSearchStride  = 500 * time.Microsecond
	visProbeWindow   = 10 * time.Millisecond
	visLeaderProbe   = 20 * time.Millisecond
	visLeaderBack1   = 200 * time.Millisecond
	visLeaderBack2   = 100 * time.Millisecond
	visBreakStep     = 5 * time.Millisecond
	visBreakMaxScan  = 300 * time.Millisecond
	visEndRefineStep = 2 * time.Millisecond
	visEndRefineHalf = 60 * time.Millisecond
	visDefaultMode   = Robot36
)

// VISResult is the outcome of DetectMode: the mode to decode with,
// the sample position immediately after the VIS frame, the measured
// frequency shift, and the raw VIS code if one was decoded from a header
// (nil if the default mode or timing fallback was used).
type VISResult struct {
	Mode      Mode
	VISEndPos int
	FreqShift float64
	VISCode   *uint8
}

// DetectMode scans up to the first 60s of samples for a VIS header. If
// none is found, it falls back to timing-based detection, and if that also
// fails, returns the default mode (Robot 36) with VISCode nil and
// FreqShift 0: the Decoder Orchestrator then attempts sync acquisition
// from that assumption rather than failing outright.
func DetectMode(samples []float32, sampleRate int) VISResult {
	if res, ok := scanForVIS(samples, sampleRate); ok {
		return res
	}
	if res, ok := timingFallback(samples, sampleRate); ok {
		return res
	}
	mode := Registry[visDefaultMode]
	return VISResult{Mode: mode, VISEndPos: 0, FreqShift: 0, VISCode: nil}
}

// scanForVIS implements the leader/break/start-bit/data-bits/parity/stop
// sequence of 4.5. It keeps scanning past a candidate that fails parity or
// whose VIS code matches no known mode, per the spec's decision to
// continue rather than abort the whole search.
func scanForVIS(samples []float32, sampleRate int) (VISResult, bool) {
	searchEnd := samplesForDuration(visSearchWindow, sampleRate)
	if searchEnd > len(samples) {
		searchEnd = len(samples)
	}
	stride := samplesForDuration(visSearchStride, sampleRate)
	if stride < 1 {
		stride = 1
	}

	for pos := 0; pos < searchEnd; pos += stride {
		breakFreq := detectFrequency(samples, pos, visProbeWindow, sampleRate)
		if !withinTolerance(breakFreq, FreqSync, 150) {
			continue
		}
		freqShift := breakFreq - FreqSync

		back1 := pos - samplesForDuration(visLeaderBack1, sampleRate)
		back2 := pos - samplesForDuration(visLeaderBack2, sampleRate)
		if back1 < 0 || back2 < 0 {
			continue
		}
		leaderFreq := FreqVISStart + freqShift
		if !withinTolerance(detectFrequency(samples, back1, visLeaderProbe, sampleRate), leaderFreq, 200) {
			continue
		}
		if !withinTolerance(detectFrequency(samples, back2, visLeaderProbe, sampleRate), leaderFreq, 200) {
			continue
		}

		breakStart, breakEnd := breakExtent(samples, pos, breakFreq, sampleRate)
		if breakEnd-breakStart < samplesForDuration(5*time.Millisecond, sampleRate) {
			continue
		}

		dataStart := breakEnd
		afterFreq := detectFrequency(samples, breakEnd, visBit, sampleRate)
		if withinTolerance(afterFreq, leaderFreq, 150) {
			dataStart = breakEnd + samplesForDuration(visBit, sampleRate)
		}

		bit0Freq := detectFrequency(samples, dataStart, visBit, sampleRate)
		if withinTolerance(bit0Freq, leaderFreq, 150) {
			continue
		}
		if bit0Freq < 1000+freqShift || bit0Freq > 1500+freqShift {
			continue
		}

		code, parityOK := decodeVISBits(samples, dataStart, freqShift, sampleRate)
		if !parityOK {
			continue
		}

		visEndPos := visEndRefinement(samples, dataStart, freqShift, sampleRate)

		if mode, ok := ModeByVIS(code); ok {
			c := code
			return VISResult{Mode: mode, VISEndPos: visEndPos, FreqShift: freqShift, VISCode: &c}, true
		}
		// Code decoded cleanly but names no known mode: keep scanning for
		// another candidate rather than aborting the whole search.
	}
	return VISResult{}, false
}

// breakExtent scans backward then forward from pos in visBreakStep
// increments while the frequency stays within +/-80 Hz of breakFreq,
// bounded by visBreakMaxScan each direction.
func breakExtent(samples []float32, pos int, breakFreq float64, sampleRate int) (int, int) {
	step := samplesForDuration(visBreakStep, sampleRate)
	maxSteps := int(visBreakMaxScan / visBreakStep)

	start := pos
	for i := 1; i <= maxSteps; i++ {
		cand := pos - i*step
		if cand < 0 || !withinTolerance(detectFrequency(samples, cand, visProbeWindow, sampleRate), breakFreq, 80) {
			break
		}
		start = cand
	}

	end := pos + samplesForDuration(visProbeWindow, sampleRate)
	for i := 1; i <= maxSteps; i++ {
		cand := pos + i*step
		if !withinTolerance(detectFrequency(samples, cand, visProbeWindow, sampleRate), breakFreq, 80) {
			break
		}
		end = cand + samplesForDuration(visProbeWindow, sampleRate)
	}
	return start, end
}

// decodeVISBits reads 7 LSB-first data bits followed by an even-parity
// bit, each 30ms, starting at dataStart. ok is false if parity fails.
func decodeVISBits(samples []float32, dataStart int, freqShift float64, sampleRate int) (code uint8, ok bool) {
	bitSamples := samplesForDuration(visBit, sampleRate)
	ones := 0
	for i := 0; i < 7; i++ {
		f := detectFrequency(samples, dataStart+i*bitSamples, visBit, sampleRate)
		if f < 1200+freqShift {
			code |= 1 << uint(i)
			ones++
		}
	}
	parityFreq := detectFrequency(samples, dataStart+7*bitSamples, visBit, sampleRate)
	parityBit := 0
	if parityFreq < 1200+freqShift {
		parityBit = 1
	}
	return code, (ones+parityBit)%2 == 0
}

// visEndRefinement nominally places the VIS end 9 bit-periods (7 data +
// parity + stop) after dataStart, then searches +/-60ms in 2ms steps for
// the porch tone that follows the first line's sync pulse; if found, the
// end position is backed off by 9ms to land on the sync pulse itself.
func visEndRefinement(samples []float32, dataStart int, freqShift float64, sampleRate int) int {
	bitSamples := samplesForDuration(visBit, sampleRate)
	nominalEnd := dataStart + 9*bitSamples

	porchFreq := FreqBlack + freqShift
	step := samplesForDuration(visEndRefineStep, sampleRate)
	maxOffset := samplesForDuration(visEndRefineHalf, sampleRate)

	for off := -maxOffset; off <= maxOffset; off += step {
		p := nominalEnd + off
		if p < 0 {
			continue
		}
		if withinTolerance(detectFrequency(samples, p, visProbeWindow, sampleRate), porchFreq, 100) {
			return p - samplesForDuration(9*time.Millisecond, sampleRate)
		}
	}
	return nominalEnd
}

// timingFallback looks for a sustained >=200ms 1900 Hz leader, skips the
// ~500ms VIS region, then locates up to three 1200 Hz sync pulses to
// estimate the inter-sync period and match it to a mode within 10%
// tolerance.
func timingFallback(samples []float32, sampleRate int) (VISResult, bool) {
	searchEnd := samplesForDuration(visSearchWindow, sampleRate)
	if searchEnd > len(samples) {
		searchEnd = len(samples)
	}
	stride := samplesForDuration(visSearchStride, sampleRate)
	if stride < 1 {
		stride = 1
	}
	minLeader := samplesForDuration(200*time.Millisecond, sampleRate)

	for pos := 0; pos < searchEnd; pos += stride {
		if !withinTolerance(detectFrequency(samples, pos, visLeaderProbe, sampleRate), FreqVISStart, 100) {
			continue
		}
		leaderEnd := pos
		for leaderEnd-pos < minLeader {
			step := samplesForDuration(visLeaderProbe, sampleRate)
			next := leaderEnd + step
			if !withinTolerance(detectFrequency(samples, next, visLeaderProbe, sampleRate), FreqVISStart, 100) {
				break
			}
			leaderEnd = next
		}
		if leaderEnd-pos < minLeader {
			continue
		}

		visRegionEnd := leaderEnd + samplesForDuration(500*time.Millisecond, sampleRate)
		first, ok := findSyncPulse(samples, visRegionEnd, visRegionEnd+samplesForDuration(2*time.Second, sampleRate), 0, 9*time.Millisecond, sampleRate)
		if !ok {
			continue
		}
		second, ok := findSyncPulse(samples, first+1, first+samplesForDuration(1*time.Second, sampleRate), 0, 9*time.Millisecond, sampleRate)
		if !ok {
			continue
		}
		period := second - first

		for _, mode := range Registry {
			expected := samplesForDuration(mode.linePeriod(), sampleRate)
			if expected == 0 {
				continue
			}
			tolerance := expected / 10
			diff := period - expected
			if diff < 0 {
				diff = -diff
			}
			if diff <= tolerance {
				return VISResult{Mode: mode, VISEndPos: first, FreqShift: 0, VISCode: nil}, true
			}
		}
	}
	return VISResult{}, false
}

// evenParityBit computes the parity bit for the low 7 bits of code, used
// by the Encoder to mirror the convention decoded here.
func evenParityBit(code uint8) int {
	return bits.OnesCount8(code&0x7f) % 2
}
