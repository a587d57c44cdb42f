/*
NAME
  audiosrc.go

DESCRIPTION
  audiosrc.go defines the Source interface: a file-backed collaborator that
  loads an entire recording into memory as mono float32 samples for the SSTV
  decoder, independent of the recording's on-disk encoding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audiosrc loads WAV and FLAC recordings into the mono float32 form
// that codec/sstv.Decode consumes. Unlike device/file's streaming AVDevice,
// a decode pass needs the whole recording before VIS detection can begin, so
// Source trades the Start/Stop/io.Reader shape for a single Load call.
package audiosrc

import "fmt"

// Source loads an audio recording in its entirety.
type Source interface {
	// Name identifies the source for logging, typically a file path.
	Name() string

	// Load reads and decodes the whole recording, downmixing to mono if
	// necessary, and returns its samples alongside the rate they were
	// recorded at. codec/sstv.Decode accepts any sample rate, so Load does
	// not resample.
	Load() ([]float32, int, error)
}

// errLoad wraps a lower-level decode error with the source's name.
func errLoad(name string, err error) error {
	return fmt.Errorf("audiosrc: %s: %w", name, err)
}
