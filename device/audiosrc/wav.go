/*
NAME
  wav.go

DESCRIPTION
  wav.go implements Source for WAV files via go-audio/wav, which tolerates
  the broader range of bit depths and channel counts real capture hardware
  produces, where codec/wav only round-trips the canonical 16-bit mono PCM
  that this module's own codec/sstv Encoder writes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audiosrc

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// WAVSource loads a WAV file from disk.
type WAVSource struct {
	path string
}

// NewWAVSource returns a Source that reads the WAV file at path.
func NewWAVSource(path string) *WAVSource { return &WAVSource{path: path} }

// Name returns the underlying file path.
func (s *WAVSource) Name() string { return s.path }

// Load decodes the WAV file, downmixing to mono and normalizing to the
// [-1, 1] float32 range Decode expects.
func (s *WAVSource) Load() ([]float32, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, errLoad(s.path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, errLoad(s.path, fmt.Errorf("not a valid WAV file"))
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errLoad(s.path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, errLoad(s.path, fmt.Errorf("missing channel format"))
	}

	samples := downmixInts(buf.Data, buf.Format.NumChannels, buf.SourceBitDepth)
	return samples, buf.Format.SampleRate, nil
}

// downmixInts converts interleaved integer PCM samples at the given bit
// depth to mono float32 in [-1, 1], averaging all channels into one.
func downmixInts(data []int, channels, bitDepth int) []float32 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	full := float32(int64(1) << uint(bitDepth-1))
	n := len(data) / channels
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum int
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		v := float32(sum) / float32(channels) / full
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}
