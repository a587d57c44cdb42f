/*
NAME
  wav.go

DESCRIPTION
  wav.go contains functions for processing wav. It provides a canonical
  44-byte mono 16-bit PCM RIFF/WAVE writer, and a reader that walks chunks
  in arbitrary order to tolerate LIST/INFO/fact chunks ahead of data.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package wav provides a mono 16-bit PCM RIFF/WAVE writer and reader.
package wav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PCMFormat is the WAVE format tag for linear PCM, as defined by the wav std.
const PCMFormat = 1

const (
	headerSize = 44
	bitDepth   = 16
	channels   = 1
)

var (
	errShortHeader   = fmt.Errorf("wav: not enough bytes for a RIFF header")
	errNotRIFF       = fmt.Errorf("wav: missing RIFF/WAVE identifiers")
	errNoDataChunk   = fmt.Errorf("wav: no data chunk found")
	errInvalidFormat = fmt.Errorf("wav: only 16-bit mono PCM is supported")
	errInvalidRate   = fmt.Errorf("invalid or no sample rate defined")
)

// Encode writes samples, each expected in [-1, 1], as a canonical 44-byte
// RIFF/WAVE header followed by little-endian 16-bit mono PCM at sampleRate.
func Encode(samples []float32, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, errInvalidRate
	}

	dataSize := len(samples) * 2
	buf := make([]byte, headerSize+dataSize)

	// RIFF/WAVE identifiers and overall size.
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(headerSize-8+dataSize))
	copy(buf[8:12], "WAVE")

	// fmt subchunk: PCM, mono, 16-bit.
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], PCMFormat)
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	byteRate := sampleRate * channels * bitDepth / 8
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	blockAlign := channels * bitDepth / 8
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitDepth)

	// data subchunk.
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range samples {
		v := clamp(s)
		binary.LittleEndian.PutUint16(buf[headerSize+i*2:], uint16(int16(v*0x7FFF)))
	}

	return buf, nil
}

// Decode parses a RIFF/WAVE byte stream, walking chunks from offset 12 until
// the data chunk is found, and returns the contained 16-bit little-endian
// mono PCM as float32 samples in [-1, 1], along with the declared sample
// rate. Chunks other than fmt/data (LIST, INFO, fact, ...) are skipped.
func Decode(b []byte) ([]float32, int, error) {
	if len(b) < 12 {
		return nil, 0, errShortHeader
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, 0, errNotRIFF
	}

	var (
		sampleRate int
		bits       int
		fmtTag     uint16
		numChans   uint16
		dataOff    = -1
		dataLen    int
	)

	pos := 12
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if body+16 > len(b) {
				return nil, 0, errShortHeader
			}
			fmtTag = binary.LittleEndian.Uint16(b[body : body+2])
			numChans = binary.LittleEndian.Uint16(b[body+2 : body+4])
			sampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(b[body+14 : body+16]))
		case "data":
			dataOff = body
			dataLen = size
		}

		// Chunks are padded to an even byte boundary.
		advance := size
		if advance%2 != 0 {
			advance++
		}
		pos = body + advance

		if id == "data" {
			break
		}
	}

	if dataOff < 0 {
		return nil, 0, errNoDataChunk
	}
	if fmtTag != 0 && (fmtTag != PCMFormat || bits != bitDepth || numChans != channels) {
		return nil, 0, errInvalidFormat
	}
	if sampleRate <= 0 {
		return nil, 0, errInvalidRate
	}
	if dataOff+dataLen > len(b) {
		dataLen = len(b) - dataOff
	}

	n := dataLen / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(b[dataOff+i*2:]))
		samples[i] = float32(v) / 0x7FFF
	}

	return samples, sampleRate, nil
}

func clamp(v float32) float32 {
	return float32(math.Max(-1, math.Min(1, float64(v))))
}
