/*
NAME
  offset.go

DESCRIPTION
  offset.go implements the Frequency Offset Estimator: re-acquires the
  sync pulse across up to 20 successive lines, measures each one's center
  frequency with a narrow sweep around 1200 Hz, and returns the median
  deviation if it exceeds the noise floor.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

const maxOffsetLines = 20

// estimateFreqOffset measures the sync-pulse center frequency across up to
// maxOffsetLines successive lines starting at firstSyncPos, and returns the
// median of (measured - 1200). Values within +/-50 Hz are treated as
// measurement noise and reported as zero, since the source recordings this
// is grounded on carry no offset worth correcting below that.
func estimateFreqOffset(samples []float32, firstSyncPos int, mode Mode, sampleRate int) float64 {
	period := samplesForDuration(mode.linePeriod(), sampleRate)
	if period <= 0 {
		return 0
	}

	var deviations []float64
	cursor := firstSyncPos
	for i := 0; i < maxOffsetLines; i++ {
		tolerance := period / 20 // +/-5%.
		pos, ok := findSyncPulse(samples, cursor+period-tolerance, cursor+period+tolerance, 0, mode.SyncPulse, sampleRate)
		if !ok {
			break
		}
		f := narrowSyncFrequency(samples, pos, mode.SyncPulse, sampleRate)
		deviations = append(deviations, f-FreqSync)
		cursor = pos
	}
	if len(deviations) == 0 {
		return 0
	}

	sorted := append([]float64(nil), deviations...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	if median > 50 || median < -50 {
		return median
	}
	return 0
}

// narrowSyncFrequency sweeps +/-200 Hz around FreqSync in 1 Hz steps (the
// same tolerance findSyncPulse accepted the pulse with), a finer search
// than detectFrequency's fixed probe list, since by this point the window
// is already known to contain a sync pulse.
func narrowSyncFrequency(samples []float32, pos int, syncPulse time.Duration, sampleRate int) float64 {
	winDur := syncPulse
	if winDur < 4*time.Millisecond {
		winDur = 4 * time.Millisecond
	}
	end := pos + samplesForDuration(winDur, sampleRate)

	bestFreq, bestMag := FreqSync-200, -1.0
	for f := FreqSync - 200; f <= FreqSync+200; f++ {
		mag := goertzel(samples, pos, end, f, sampleRate)
		if mag > bestMag {
			bestMag = mag
			bestFreq = f
		}
	}
	return bestFreq
}
