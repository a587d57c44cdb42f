/*
NAME
  memory.go

DESCRIPTION
  memory.go implements Sink by keeping frames in memory, useful for tests
  and for embedding the decoder in a program that wants the image.Image
  directly rather than a file.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pixelsink

import (
	"image"
	"sync"
)

// MemorySink accumulates frames in memory in Write order.
type MemorySink struct {
	name string
	mu   sync.Mutex
	imgs []*image.RGBA
}

// NewMemorySink returns a Sink that keeps every written frame in memory.
func NewMemorySink(name string) *MemorySink { return &MemorySink{name: name} }

// Name returns the sink's label.
func (s *MemorySink) Name() string { return s.name }

// Write copies pixels into a new image.RGBA and appends it to the sink.
func (s *MemorySink) Write(pixels []byte, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(pixels))
	copy(cp, pixels)
	s.imgs = append(s.imgs, toRGBA(cp, width, height))
	return nil
}

// Frames returns every image written so far, in write order.
func (s *MemorySink) Frames() []*image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*image.RGBA, len(s.imgs))
	copy(out, s.imgs)
	return out
}

// Last returns the most recently written frame, or nil if none.
func (s *MemorySink) Last() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.imgs) == 0 {
		return nil
	}
	return s.imgs[len(s.imgs)-1]
}
