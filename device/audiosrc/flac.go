/*
NAME
  flac.go

DESCRIPTION
  flac.go implements Source for FLAC files via github.com/mewkiz/flac,
  walking frames the same way the old FLAC-to-WAV transcoder did, but
  downmixing straight to mono float32 instead of re-encoding to WAV bytes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audiosrc

import (
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACSource loads a FLAC file from disk.
type FLACSource struct {
	path string
}

// NewFLACSource returns a Source that reads the FLAC file at path.
func NewFLACSource(path string) *FLACSource { return &FLACSource{path: path} }

// Name returns the underlying file path.
func (s *FLACSource) Name() string { return s.path }

// Load decodes the FLAC stream frame by frame, downmixing each frame's
// subframes to mono float32 in [-1, 1] as they're parsed.
func (s *FLACSource) Load() ([]float32, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, errLoad(s.path, err)
	}
	defer f.Close()

	stream, err := flac.Parse(f)
	if err != nil {
		return nil, 0, errLoad(s.path, err)
	}

	bps := int(stream.Info.BitsPerSample)
	nc := int(stream.Info.NChannels)
	sampleRate := int(stream.Info.SampleRate)
	if bps <= 0 {
		bps = 16
	}
	full := float32(int64(1) << uint(bps-1))

	var out []float32
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errLoad(s.path, err)
		}
		n := fr.Subframes[0].NSamples
		for i := 0; i < n; i++ {
			var sum int32
			for _, sub := range fr.Subframes {
				sum += sub.Samples[i]
			}
			v := float32(sum) / float32(nc) / full
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			out = append(out, v)
		}
	}
	return out, sampleRate, nil
}
