/*
NAME
  timing.go

DESCRIPTION
  timing.go contains the sample-accurate boundary arithmetic shared by the
  Encoder and Line Decoder. All timing computations map duration to samples
  by truncation, and all per-pixel boundaries are computed as absolute
  fractions of a total, never as a sum of per-pixel deltas, to avoid the
  several-samples-per-line drift that a naive accumulation introduces.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import "time"

// samplesForDuration returns floor(d.Seconds() * sampleRate), computed with
// integer arithmetic on the duration's nanoseconds to avoid floating-point
// error for sub-millisecond mode timings.
func samplesForDuration(d time.Duration, sampleRate int) int {
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}

// boundary returns floor(k/n * total), the absolute sample offset of the
// k-th of n equal divisions of a span of total samples. Calling this for
// k=0..n and taking successive differences sums exactly to total; summing
// floor(total/n) deltas instead does not, and must not be used here.
func boundary(k, n, total int) int {
	return k * total / n
}
