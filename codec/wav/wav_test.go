/*
NAME
  wav_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package wav

import (
	"math"
	"testing"
)

func TestEncodeHeader(t *testing.T) {
	tests := []struct {
		name       string
		samples    []float32
		sampleRate int
		wantLen    int
		wantErr    error
	}{
		{name: "no samples", samples: nil, sampleRate: 48000, wantLen: 44},
		{name: "two samples", samples: []float32{0, 0.5}, sampleRate: 48000, wantLen: 48},
		{name: "invalid rate", samples: []float32{0}, sampleRate: 0, wantErr: errInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.samples, tt.sampleRate)
			if err != tt.wantErr {
				t.Fatalf("Encode() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(b) != tt.wantLen {
				t.Fatalf("Encode() len = %d, want %d", len(b), tt.wantLen)
			}
			if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
				t.Fatalf("Encode() header malformed: %q", b[:44])
			}
		})
	}
}

// TestRoundTrip checks that Decode(Encode(samples)) recovers samples within
// the 16-bit quantization tolerance of ±1/32768.
func TestRoundTrip(t *testing.T) {
	in := make([]float32, 100)
	for i := range in {
		in[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b, err := Encode(in, 48000)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out, rate, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rate != 48000 {
		t.Fatalf("Decode() rate = %d, want 48000", rate)
	}
	if len(out) != len(in) {
		t.Fatalf("Decode() len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if math.Abs(float64(out[i]-in[i])) > 1.0/32768+1e-6 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

// TestDecodeSkipsExtraChunks ensures a LIST chunk preceding data is skipped
// rather than misparsed as audio.
func TestDecodeSkipsExtraChunks(t *testing.T) {
	b, err := Encode([]float32{0.25, -0.25}, 44100)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Splice in a LIST chunk ("INFO" payload, 4 bytes) right after fmt.
	list := []byte("LIST")
	size := make([]byte, 4)
	size[0] = 4
	payload := []byte("INFO")
	withList := append(append(append(append([]byte{}, b[:36]...), list...), size...), payload...)
	withList = append(withList, b[36:]...)

	out, rate, err := Decode(withList)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rate != 44100 {
		t.Fatalf("Decode() rate = %d, want 44100", rate)
	}
	if len(out) != 2 {
		t.Fatalf("Decode() len = %d, want 2", len(out))
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode([]byte("short")); err != errShortHeader {
		t.Fatalf("Decode() error = %v, want %v", err, errShortHeader)
	}
	if _, _, err := Decode([]byte("NOTARIFFHEADERWAVE!")); err != errNotRIFF {
		t.Fatalf("Decode() error = %v, want %v", err, errNotRIFF)
	}
}
