/*
NAME
  png.go

DESCRIPTION
  png.go implements Sink by encoding each frame as a PNG file, logging each
  write the way device/file.AVFile logs its own I/O.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pixelsink

import (
	"fmt"
	"image/png"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
)

// PNGFileSink writes frames to a single PNG file, overwriting it on every
// Write.
type PNGFileSink struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

// NewPNGFileSink returns a Sink that writes PNG frames to path, logging
// with l.
func NewPNGFileSink(path string, l logging.Logger) *PNGFileSink {
	return &PNGFileSink{path: path, log: l}
}

// Name returns the underlying file path.
func (s *PNGFileSink) Name() string { return s.path }

// Write encodes pixels as a PNG and writes it to the sink's path.
func (s *PNGFileSink) Write(pixels []byte, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("pixelsink: could not create %s: %w", s.path, err)
	}
	defer f.Close()

	if err := png.Encode(f, toRGBA(pixels, width, height)); err != nil {
		return fmt.Errorf("pixelsink: could not encode PNG to %s: %w", s.path, err)
	}
	if s.log != nil {
		s.log.Info("wrote decoded frame", "path", s.path, "width", width, "height", height)
	}
	return nil
}
