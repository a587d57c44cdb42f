/*
NAME
  config.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for an sstvsession.
package config

import "github.com/ausocean/utils/logging"

// Enums to define a session's direction and input container.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	// Direction.
	DirectionEncode
	DirectionDecode

	// Input containers accepted on the decode path.
	InputWAV
	InputFLAC
)

// Config provides the parameters for a single sstvsession run. A new Config
// must be passed to the constructor; the values its Direction and
// InputContainer fields take are defined as consts above.
type Config struct {
	// Direction selects whether the session encodes an image to audio or
	// decodes audio to an image. One of DirectionEncode, DirectionDecode.
	Direction int

	// Mode names the SSTV mode to use, e.g. "ROBOT36", "MARTIN1", "SCOTTIE1",
	// "PD120" (matched case-sensitively). Required for encoding; ignored for decoding, since the mode
	// is recovered from the VIS header.
	Mode string

	// InputPath is the source file: an image (PNG/JPEG) for encoding, or an
	// audio recording for decoding.
	InputPath string

	// InputContainer selects the decode path's audio container. One of
	// InputWAV, InputFLAC. Ignored for encoding.
	InputContainer int

	// OutputPath is the destination file: a WAV recording for encoding, or
	// a PNG image for decoding.
	OutputPath string

	// SampleRate is the sample rate used to synthesize an encoded
	// transmission. Ignored for decoding, since the rate is read from the
	// input recording.
	SampleRate int

	// AutoCalibrate enables the Frequency Offset Estimator and per-line
	// resync during decoding.
	AutoCalibrate bool

	// BandLimit enables the pre-decode FIR band-pass stage in
	// device/audiosrc before handing samples to the decoder.
	BandLimit bool

	// Logger receives session diagnostics. Required.
	Logger logging.Logger
}

// Validate checks that c is complete enough to run a session.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errMissing("Logger")
	}
	if c.InputPath == "" {
		return errMissing("InputPath")
	}
	if c.OutputPath == "" {
		return errMissing("OutputPath")
	}
	switch c.Direction {
	case DirectionEncode:
		if c.Mode == "" {
			return errMissing("Mode")
		}
		if c.SampleRate <= 0 {
			return errMissing("SampleRate")
		}
	case DirectionDecode:
		switch c.InputContainer {
		case InputWAV, InputFLAC:
		default:
			return errMissing("InputContainer")
		}
	default:
		return errMissing("Direction")
	}
	return nil
}

func errMissing(field string) error {
	return &MissingFieldError{Field: field}
}

// MissingFieldError indicates a required Config field was left unset.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "config: missing required field " + e.Field
}
