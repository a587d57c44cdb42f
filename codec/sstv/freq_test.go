package sstv

import (
	"testing"
	"time"
)

func synthesizeTone(freq float64, duration time.Duration, sampleRate int) []float32 {
	tone := newToneSynth(sampleRate)
	return tone.addTone(nil, freq, duration)
}

func TestGoertzelPicksDominantFrequency(t *testing.T) {
	samples := synthesizeTone(1500, 20*time.Millisecond, testSampleRate)
	atTarget := goertzel(samples, 0, len(samples), 1500, testSampleRate)
	atOther := goertzel(samples, 0, len(samples), 1900, testSampleRate)
	if atTarget <= atOther {
		t.Errorf("magnitude at 1500Hz (%v) should exceed magnitude at 1900Hz (%v) for a 1500Hz tone", atTarget, atOther)
	}
}

func TestDetectFrequencyRange(t *testing.T) {
	samples := synthesizeTone(2000, 30*time.Millisecond, testSampleRate)
	f := detectFrequencyRange(samples, 0, 30*time.Millisecond, testSampleRate)
	if f < 1995 || f > 2005 {
		t.Errorf("detectFrequencyRange = %v, want close to 2000", f)
	}
}

func TestDetectFrequencyUndersizedWindow(t *testing.T) {
	samples := make([]float32, 3)
	if f := detectFrequencyRange(samples, 0, time.Millisecond, testSampleRate); f != FreqBlack {
		t.Errorf("undersized window: got %v, want %v", f, FreqBlack)
	}
}

func TestDetectFrequencyProbesKnownTones(t *testing.T) {
	samples := synthesizeTone(FreqSync, 10*time.Millisecond, testSampleRate)
	f := detectFrequency(samples, 0, 10*time.Millisecond, testSampleRate)
	if f < FreqSync-5 || f > FreqSync+5 {
		t.Errorf("detectFrequency = %v, want close to %v", f, FreqSync)
	}
}
