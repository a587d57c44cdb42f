/*
NAME
  config_test.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidateEncode(t *testing.T) {
	dl := &dumbLogger{}
	c := Config{
		Direction:  DirectionEncode,
		Mode:       "ROBOT36",
		InputPath:  "in.png",
		OutputPath: "out.wav",
		SampleRate: 48000,
		Logger:     dl,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	// cmp.Equal lets us confirm Validate() doesn't mutate the config it's
	// called on, the way revid's Config.Validate used to guard against.
	want := c
	if !cmp.Equal(c, want) {
		t.Errorf("Validate mutated config\nwant: %v\ngot: %v", want, c)
	}
}

func TestValidateDecode(t *testing.T) {
	dl := &dumbLogger{}
	c := Config{
		Direction:      DirectionDecode,
		InputPath:      "in.wav",
		InputContainer: InputWAV,
		OutputPath:     "out.png",
		Logger:         dl,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		c    Config
	}{
		{name: "no logger", c: Config{Direction: DirectionEncode, Mode: "ROBOT36", InputPath: "a", OutputPath: "b", SampleRate: 1}},
		{name: "no input path", c: Config{Direction: DirectionEncode, Mode: "ROBOT36", OutputPath: "b", SampleRate: 1, Logger: &dumbLogger{}}},
		{name: "no output path", c: Config{Direction: DirectionEncode, Mode: "ROBOT36", InputPath: "a", SampleRate: 1, Logger: &dumbLogger{}}},
		{name: "encode missing mode", c: Config{Direction: DirectionEncode, InputPath: "a", OutputPath: "b", SampleRate: 1, Logger: &dumbLogger{}}},
		{name: "encode missing rate", c: Config{Direction: DirectionEncode, Mode: "ROBOT36", InputPath: "a", OutputPath: "b", Logger: &dumbLogger{}}},
		{name: "decode missing container", c: Config{Direction: DirectionDecode, InputPath: "a", OutputPath: "b", Logger: &dumbLogger{}}},
		{name: "unknown direction", c: Config{InputPath: "a", OutputPath: "b", Logger: &dumbLogger{}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.c.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
