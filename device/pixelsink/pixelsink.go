/*
NAME
  pixelsink.go

DESCRIPTION
  pixelsink.go defines the Sink interface: the external collaborator that
  stores a decoded frame's RGBA pixels, mirroring the mutex-guarded,
  logged write lifecycle device/file.AVFile uses for its own I/O.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pixelsink stores decoded SSTV frames as RGBA images, either to a
// PNG file or to memory for programmatic inspection.
package pixelsink

import "image"

// Sink receives a decoded frame's pixels.
type Sink interface {
	// Name identifies the sink for logging.
	Name() string

	// Write stores pixels, an RGBA buffer of width*height*4 bytes in
	// row-major order with alpha always 255.
	Write(pixels []byte, width, height int) error
}

// toRGBA wraps pixels in an image.RGBA without copying.
func toRGBA(pixels []byte, width, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}
