/*
NAME
  sync.go

DESCRIPTION
  sync.go implements the Sync Finder: forward-only scanning for a 1200 Hz
  line sync pulse, validated against three sub-windows to reject spurious
  single-window matches.

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

const syncStepDuration = 200 * time.Microsecond

// findSyncPulse searches forward through samples[startPos:endPos] in 0.2ms
// steps for a sync-frequency window of duration max(4ms, syncPulse),
// validated by checking three sub-windows (at 0, 1/3, 2/3 through the
// window) each within +/-200 Hz of FreqSync+freqShift. It always searches
// forward; callers needing a both-sides search pass a widened
// [startPos, endPos] themselves.
func findSyncPulse(samples []float32, startPos, endPos int, freqShift float64, syncPulse time.Duration, sampleRate int) (int, bool) {
	if startPos < 0 {
		startPos = 0
	}
	if endPos > len(samples) {
		endPos = len(samples)
	}

	winDur := syncPulse
	if winDur < 4*time.Millisecond {
		winDur = 4 * time.Millisecond
	}
	win := samplesForDuration(winDur, sampleRate)
	if win <= 0 {
		return 0, false
	}
	step := samplesForDuration(syncStepDuration, sampleRate)
	if step < 1 {
		step = 1
	}
	sub := win / 3
	target := FreqSync + freqShift

	for pos := startPos; pos+win <= endPos; pos += step {
		if !withinTolerance(goertzelFreqAt(samples, pos, winDur, sampleRate), target, 200) {
			continue
		}
		if validateSyncSubWindows(samples, pos, sub, sampleRate, target) {
			return pos, true
		}
	}
	return 0, false
}

func goertzelFreqAt(samples []float32, pos int, winDur time.Duration, sampleRate int) float64 {
	return detectFrequency(samples, pos, winDur, sampleRate)
}

func validateSyncSubWindows(samples []float32, pos, sub, sampleRate int, target float64) bool {
	if sub <= 0 {
		return true
	}
	for i := 0; i < 3; i++ {
		start := pos + i*sub
		f := detectFrequencyRangeSpan(samples, start, start+sub, sampleRate)
		if !withinTolerance(f, target, 200) {
			return false
		}
	}
	return true
}

func withinTolerance(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}
