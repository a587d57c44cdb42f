package sstv

import "testing"

// TestSampleAccurateBoundaries is the spec's headline invariant: summing
// the per-division deltas of boundary() must reconstruct totalSamples
// exactly, for any N, which a naive floor(totalSamples/N) accumulation
// does not guarantee.
func TestSampleAccurateBoundaries(t *testing.T) {
	cases := []struct{ n, total int }{
		{320, 146 * 48}, // Martin M1 scanTime-ish numbers, not exact, just nontrivial.
		{160, 88 * 48},
		{7, 1000},
		{1, 1},
		{13, 97},
	}
	for _, c := range cases {
		sum := 0
		for k := 0; k < c.n; k++ {
			sum += boundary(k+1, c.n, c.total) - boundary(k, c.n, c.total)
		}
		if sum != c.total {
			t.Errorf("n=%d total=%d: boundary deltas summed to %d, want %d", c.n, c.total, sum, c.total)
		}
	}
}

func TestSamplesForDuration(t *testing.T) {
	if got := samplesForDuration(0, 48000); got != 0 {
		t.Errorf("samplesForDuration(0) = %d, want 0", got)
	}
	// 10ms @ 48kHz is exactly 480 samples.
	if got := samplesForDuration(10_000_000, 48000); got != 480 {
		t.Errorf("samplesForDuration(10ms) = %d, want 480", got)
	}
}
