/*
NAME
  diagnostics.go

DESCRIPTION
  diagnostics.go defines the diagnostics record returned alongside decoded
  pixels: detected mode, VIS code, timing and calibration facts, and the
  Quality Analyzer's verdict.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sstv

import "time"

// Verdict classifies the Quality Analyzer's overall assessment of a
// decoded frame.
type Verdict int

const (
	Good Verdict = iota
	Warn
	Bad
)

func (v Verdict) String() string {
	switch v {
	case Good:
		return "good"
	case Warn:
		return "warn"
	case Bad:
		return "bad"
	default:
		return "unknown"
	}
}

// Quality is the Quality Analyzer's output: per-channel averages,
// brightness, and a verdict with any accompanying warnings.
type Quality struct {
	RAvg, GAvg, BAvg float64
	Brightness       float64
	Verdict          Verdict
	Warnings         []string
}

// Diagnostics is returned by the Decoder Orchestrator alongside the
// decoded pixel buffer.
type Diagnostics struct {
	ModeName    string
	VISCode     *uint8 // nil if the mode was not identified via a VIS header.
	SampleRate  int
	Duration    time.Duration
	FreqOffset  float64 // Hz.
	AutoCalibrated bool
	FirstSyncPos   int // Sample index of the first line's sync pulse.
	DecodeTime     time.Duration
	Quality        Quality
	Warnings       []string
}
