/*
NAME
  mode.go

DESCRIPTION
  mode.go contains the static, immutable table of supported SSTV modes and
  their timings.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sstv implements the Slow-Scan Television (SSTV) encode and decode
// signal-processing pipeline: tone generation and VIS framing on transmit,
// and VIS detection, sync acquisition, line demodulation and color-space
// reconstruction on receive.
package sstv

import (
	"fmt"
	"time"
)

// Wire-level tone frequencies. These MUST be bit-exact for interoperability
// with other SSTV implementations.
const (
	FreqSync     = 1200.0 // Line sync, VIS break, VIS stop.
	FreqBlack    = 1500.0 // Pixel value 0, Y-porch.
	FreqWhite    = 2300.0 // Pixel value 255.
	FreqVISBit1  = 1100.0 // VIS data/parity bit = 1.
	FreqVISBit0  = 1300.0 // VIS data/parity bit = 0.
	FreqVISStart = 1900.0 // VIS leader and start bit.
)

// ColorFormat identifies the color space a mode encodes its image in.
type ColorFormat int

const (
	ColorYUV ColorFormat = iota
	ColorRGB
	ColorPD
)

func (c ColorFormat) String() string {
	switch c {
	case ColorYUV:
		return "YUV"
	case ColorRGB:
		return "RGB"
	case ColorPD:
		return "PD"
	default:
		return "unknown"
	}
}

// Mode describes the fixed parameters of one SSTV transmission mode. All
// fields are immutable once the Mode is constructed; the Registry below is
// the sole source of Modes used by the Encoder and Decoder.
type Mode struct {
	Key     string // Mode key used by the Encoder's modeKey parameter, e.g. "ROBOT36".
	Name    string // Human-readable label, e.g. "Robot 36".
	VISCode uint8  // 7-bit VIS identifier.
	Width   int
	Lines   int
	Format  ColorFormat

	SyncPulse time.Duration // 1200 Hz sync pulse duration.
	SyncPorch time.Duration // 1500 Hz porch duration.

	// RGB modes only: per-channel scan duration and inter-channel separator.
	ScanTime       time.Duration
	SeparatorPulse time.Duration

	// PD modes only: duration of each of the four components per line pair.
	ComponentTime time.Duration
}

// Robot 36 (YUV) timing constants. These are not tabulated per-mode fields
// since Robot 36 is the only supported YUV mode; a second YUV mode would
// promote them into Mode fields.
const (
	robot36YScan           = 88 * time.Millisecond
	robot36ChromaSeparator = 4500 * time.Microsecond
	robot36ChromaPorch     = 1500 * time.Microsecond
	robot36ChromaScan      = 44 * time.Millisecond
)

// Mode keys, used to select a mode for encoding and reported by the decoder.
const (
	Robot36  = "ROBOT36"
	Martin1  = "MARTIN1"
	Scottie1 = "SCOTTIE1"
	PD120    = "PD120"
)

// Registry is the static table of supported modes, indexed by Key.
var Registry = map[string]Mode{
	Robot36: {
		Key: Robot36, Name: "Robot 36", VISCode: 0x08,
		Width: 320, Lines: 240, Format: ColorYUV,
		SyncPulse: 9 * time.Millisecond, SyncPorch: 3 * time.Millisecond,
	},
	Martin1: {
		Key: Martin1, Name: "Martin M1", VISCode: 0x2C,
		Width: 320, Lines: 256, Format: ColorRGB,
		SyncPulse: 4862 * time.Microsecond, SyncPorch: 572 * time.Microsecond,
		ScanTime: 146 * time.Millisecond, SeparatorPulse: 572 * time.Microsecond,
	},
	Scottie1: {
		Key: Scottie1, Name: "Scottie S1", VISCode: 0x3C,
		Width: 320, Lines: 256, Format: ColorRGB,
		SyncPulse: 9 * time.Millisecond, SyncPorch: 1500 * time.Microsecond,
		ScanTime: 138 * time.Millisecond, SeparatorPulse: 1500 * time.Microsecond,
	},
	PD120: {
		Key: PD120, Name: "PD 120", VISCode: 0x5D,
		Width: 640, Lines: 496, Format: ColorPD,
		SyncPulse: 20 * time.Millisecond, SyncPorch: 2080 * time.Microsecond,
		ComponentTime: 121600 * time.Microsecond,
	},
}

// visByCode indexes Registry by VISCode for VIS-header lookups.
var visByCode = func() map[uint8]Mode {
	m := make(map[uint8]Mode, len(Registry))
	for _, mode := range Registry {
		m[mode.VISCode] = mode
	}
	return m
}()

// ModeByVIS returns the mode with the given 7-bit VIS code, and whether one
// was found.
func ModeByVIS(code uint8) (Mode, bool) {
	m, ok := visByCode[code]
	return m, ok
}

// ModeByKey returns the mode with the given key, and whether one was found.
func ModeByKey(key string) (Mode, bool) {
	m, ok := Registry[key]
	return m, ok
}

// linePeriod returns the nominal duration of one scan line (or, for PD
// modes, a full line pair), used by VIS timing fallback and the Frequency
// Offset Estimator to predict the next sync pulse.
func (m Mode) linePeriod() time.Duration {
	switch m.Format {
	case ColorRGB:
		return m.SyncPulse + m.SyncPorch + 3*m.ScanTime + 2*m.SeparatorPulse
	case ColorYUV:
		return m.SyncPulse + m.SyncPorch + robot36YScan + robot36ChromaSeparator + robot36ChromaPorch + robot36ChromaScan
	case ColorPD:
		return m.SyncPulse + m.SyncPorch + 4*m.ComponentTime
	default:
		return 0
	}
}

// linesPerFrame returns the number of sync pulses emitted across the whole
// image: one per line for RGB/YUV, one per line pair for PD.
func (m Mode) linesPerFrame() int {
	if m.Format == ColorPD {
		return (m.Lines + 1) / 2
	}
	return m.Lines
}

func (m Mode) String() string {
	return fmt.Sprintf("%s (%dx%d, %s)", m.Name, m.Width, m.Lines, m.Format)
}
