package audiosrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/sstv/codec/wav"
)

func TestWAVSourceRoundTrip(t *testing.T) {
	const sampleRate = 8000
	want := make([]float32, 200)
	for i := range want {
		if i%4 < 2 {
			want[i] = 0.5
		} else {
			want[i] = -0.5
		}
	}

	b, err := wav.Encode(want, sampleRate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src := NewWAVSource(path)
	if src.Name() != path {
		t.Errorf("Name() = %q, want %q", src.Name(), path)
	}

	got, rate, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rate != sampleRate {
		t.Errorf("rate = %d, want %d", rate, sampleRate)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if diff := float64(got[i] - want[i]); diff > 1.0/32768+1e-6 || diff < -(1.0/32768+1e-6) {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWAVSourceMissingFile(t *testing.T) {
	_, _, err := NewWAVSource(filepath.Join(t.TempDir(), "missing.wav")).Load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFLACSourceMissingFile(t *testing.T) {
	_, _, err := NewFLACSource(filepath.Join(t.TempDir(), "missing.flac")).Load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDownmixIntsStereoAverage(t *testing.T) {
	full := 1 << 15
	data := []int{full / 2, -full / 2, full, -full}
	out := downmixInts(data, 2, 16)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0] != 0 {
		t.Errorf("out[0] = %v, want 0 (average of +0.5 and -0.5)", out[0])
	}
	if out[1] != 0 {
		t.Errorf("out[1] = %v, want 0 (average of +1 and -1)", out[1])
	}
}
