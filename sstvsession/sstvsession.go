/*
NAME
  sstvsession.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sstvsession provides an API for running a single SSTV encode or
// decode session: wiring an image or audio source, the codec/sstv signal
// pipeline, and a destination file together under one Config.
package sstvsession

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
	"sync"

	"github.com/ausocean/sstv/codec/sstv"
	"github.com/ausocean/sstv/codec/wav"
	"github.com/ausocean/sstv/device/audiosrc"
	"github.com/ausocean/sstv/device/pixelsink"
	"github.com/ausocean/sstv/sstvsession/config"
)

// Session runs a single encode or decode job described by a config.Config.
type Session struct {
	cfg config.Config

	mu      sync.Mutex
	running bool

	// lastDiag holds the most recent decode's diagnostics, or the zero
	// value after an encode.
	lastDiag sstv.Diagnostics
}

// New returns a Session for cfg, or an error if cfg is incomplete.
func New(c config.Config) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("could not set config: %w", err)
	}
	return &Session{cfg: c}, nil
}

// Config returns a copy of the session's config.
func (s *Session) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// IsRunning reports whether Run is currently executing for this session.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run executes the session's configured direction to completion. A call
// made while another Run on the same Session is executing returns an error
// without doing any work.
func (s *Session) Run() (sstv.Diagnostics, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return sstv.Diagnostics{}, fmt.Errorf("sstvsession: already running")
	}
	s.running = true
	cfg := s.cfg
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	switch cfg.Direction {
	case config.DirectionEncode:
		return sstv.Diagnostics{}, s.runEncode(cfg)
	case config.DirectionDecode:
		diag, err := s.runDecode(cfg)
		if err == nil {
			s.mu.Lock()
			s.lastDiag = diag
			s.mu.Unlock()
		}
		return diag, err
	default:
		return sstv.Diagnostics{}, fmt.Errorf("sstvsession: unknown direction %d", cfg.Direction)
	}
}

// runEncode reads cfg.InputPath as a PNG or JPEG image, synthesizes its SSTV
// transmission in cfg.Mode, and writes the resulting WAV to cfg.OutputPath.
func (s *Session) runEncode(cfg config.Config) error {
	cfg.Logger.Info("encoding image to SSTV", "path", cfg.InputPath, "mode", cfg.Mode)

	pixels, width, height, err := loadImage(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("sstvsession: could not load image: %w", err)
	}

	mode, ok := sstv.ModeByKey(cfg.Mode)
	if !ok {
		return &sstv.InvalidInputError{Reason: fmt.Sprintf("unknown mode key %q", cfg.Mode)}
	}
	if width != mode.Width || height < mode.Lines {
		cfg.Logger.Info("scaling image to mode resolution", "from", fmt.Sprintf("%dx%d", width, height), "to", fmt.Sprintf("%dx%d", mode.Width, mode.Lines))
		pixels, width, height = resizeNearest(pixels, width, height, mode.Width, mode.Lines)
	}

	enc := sstv.NewEncoder(cfg.SampleRate)
	samples, err := enc.Encode(pixels, width, height, cfg.Mode)
	if err != nil {
		return fmt.Errorf("sstvsession: encode failed: %w", err)
	}

	b, err := wav.Encode(samples, cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("sstvsession: could not encode WAV: %w", err)
	}
	if err := os.WriteFile(cfg.OutputPath, b, 0644); err != nil {
		return fmt.Errorf("sstvsession: could not write %s: %w", cfg.OutputPath, err)
	}

	cfg.Logger.Info("wrote WAV", "path", cfg.OutputPath, "samples", len(samples))
	return nil
}

// runDecode loads cfg.InputPath via the appropriate device/audiosrc.Source,
// optionally band-limits it, decodes it, and writes the resulting image to
// cfg.OutputPath as a PNG.
func (s *Session) runDecode(cfg config.Config) (sstv.Diagnostics, error) {
	var src audiosrc.Source
	switch cfg.InputContainer {
	case config.InputWAV:
		src = audiosrc.NewWAVSource(cfg.InputPath)
	case config.InputFLAC:
		src = audiosrc.NewFLACSource(cfg.InputPath)
	default:
		return sstv.Diagnostics{}, fmt.Errorf("sstvsession: unknown input container %d", cfg.InputContainer)
	}

	cfg.Logger.Info("loading audio", "path", src.Name())
	samples, sampleRate, err := src.Load()
	if err != nil {
		return sstv.Diagnostics{}, fmt.Errorf("sstvsession: could not load audio: %w", err)
	}

	if cfg.BandLimit {
		samples, err = audiosrc.BandLimit(samples, sampleRate)
		if err != nil {
			return sstv.Diagnostics{}, fmt.Errorf("sstvsession: band-limit failed: %w", err)
		}
	}

	frame, err := sstv.Decode(samples, sampleRate, cfg.AutoCalibrate)
	if err != nil {
		return sstv.Diagnostics{}, fmt.Errorf("sstvsession: decode failed: %w", err)
	}

	sink := pixelsink.NewPNGFileSink(cfg.OutputPath, cfg.Logger)
	if err := sink.Write(frame.Pixels, frame.Width, frame.Height); err != nil {
		return frame.Diagnostics, fmt.Errorf("sstvsession: could not write frame: %w", err)
	}

	for _, w := range frame.Diagnostics.Warnings {
		cfg.Logger.Warning("decode warning", "warning", w)
	}
	cfg.Logger.Info("decoded frame", "mode", frame.Diagnostics.ModeName, "quality", frame.Diagnostics.Quality.Verdict)
	return frame.Diagnostics, nil
}

// loadImage reads a PNG or JPEG file and flattens it into a non-premultiplied
// RGBA byte buffer in row-major order, matching what codec/sstv.Encoder
// expects.
func loadImage(path string) (pixels []byte, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var img image.Image
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".jpg"), strings.HasSuffix(strings.ToLower(path), ".jpeg"):
		img, err = jpeg.Decode(f)
	default:
		img, err = png.Decode(f)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	pixels = make([]byte, width*height*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[i] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			pixels[i+3] = c.A
			i += 4
		}
	}
	return pixels, width, height, nil
}

// resizeNearest scales an RGBA pixel buffer to newWidth x newHeight using
// nearest-neighbour sampling. This is a CLI-level convenience, not part of
// the core codec: codec/sstv.Encoder requires an exact width match and
// leaves scaling to the caller.
func resizeNearest(pixels []byte, width, height, newWidth, newHeight int) ([]byte, int, int) {
	out := make([]byte, newWidth*newHeight*4)
	for y := 0; y < newHeight; y++ {
		sy := y * height / newHeight
		for x := 0; x < newWidth; x++ {
			sx := x * width / newWidth
			srcIdx := (sy*width + sx) * 4
			dstIdx := (y*newWidth + x) * 4
			copy(out[dstIdx:dstIdx+4], pixels[srcIdx:srcIdx+4])
		}
	}
	return out, newWidth, newHeight
}
