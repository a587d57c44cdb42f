/*
NAME
  wavio.go

DESCRIPTION
  wavio.go provides the Encoder/Decoder's WAV convenience entry points,
  chaining the Tone Synthesizer and Line Decoder to the WAVE Writer/Reader
  so callers working directly in WAV bytes don't need to import codec/wav
  themselves.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import "github.com/ausocean/sstv/codec/wav"

// EncodeWAV synthesizes modeKey's transmission for pixels and returns it
// as canonical 16-bit PCM mono WAV bytes at the Encoder's sample rate.
func (e *Encoder) EncodeWAV(pixels []byte, width, height int, modeKey string) ([]byte, error) {
	samples, err := e.Encode(pixels, width, height, modeKey)
	if err != nil {
		return nil, err
	}
	return wav.Encode(samples, e.sampleRate)
}

// DecodeWAV parses b as a WAV file and decodes the resulting samples.
func DecodeWAV(b []byte, autoCalibrate bool) (*Frame, error) {
	samples, sampleRate, err := wav.Decode(b)
	if err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	return Decode(samples, sampleRate, autoCalibrate)
}
