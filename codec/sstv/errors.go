/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error kinds surfaced by the Encoder and Decoder.
  NoVISFound and TimingOverflow are recoverable: on a missing VIS header
  the orchestrator substitutes the default mode and continues, and on a
  timing overflow it keeps the partial frame and attaches a warning to the
  diagnostics record rather than failing the call. InvalidInput and
  NoSyncFound are fatal.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import (
	"errors"
	"strconv"
)

// ErrNoSyncFound is returned when no line sync pulse could be acquired
// anywhere in the forward search windows tried by the Decoder Orchestrator.
// It is fatal: the decoder cannot produce any pixels.
var ErrNoSyncFound = errors.New("could not find sync pulse. Make sure this is a valid SSTV transmission")

// ErrNoVISFound names the case where neither a VIS header nor the timing
// fallback matched a known mode. No function in this package returns it:
// DetectMode has no error result and reports that case as the default mode
// (Robot 36) with a nil VISCode, and the Decoder Orchestrator continues
// from that default.
var ErrNoVISFound = errors.New("no VIS header found and timing fallback did not match a known mode")

// InvalidInputError reports a malformed call: an unknown mode key, a
// pixel buffer shorter than the mode requires, or a malformed WAV/PCM
// source.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Reason }

// TimingOverflowError indicates a line's cursor advanced past the end of
// the sample buffer partway through decoding. It is non-fatal: the
// partially decoded frame is still returned, with this recorded as a
// diagnostics warning.
type TimingOverflowError struct {
	Line int
}

func (e *TimingOverflowError) Error() string {
	return "sample buffer exhausted while decoding line " + strconv.Itoa(e.Line)
}
