/*
DESCRIPTION
  sstvdec is a command line tool that decodes an SSTV transmission from a
  WAV or FLAC recording into a PNG image plus a diagnostics report.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements sstvdec, a WAV/FLAC-to-decoded-PNG command line
// tool. Building with -tags withplot additionally renders a waveform PNG
// marking the detected sync pulses, for diagnosing marginal decodes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/sstv/device/audiosrc"
	"github.com/ausocean/sstv/sstvsession"
	"github.com/ausocean/sstv/sstvsession/config"
)

// Logging configuration.
const (
	logPath      = "sstvdec.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	inPtr := flag.String("in", "", "path to the WAV or FLAC recording to decode")
	outPtr := flag.String("out", "out.png", "path to write the decoded image")
	containerPtr := flag.String("container", "auto", "input container: wav, flac, or auto to guess from -in's extension")
	autoCalPtr := flag.Bool("autocal", true, "enable the frequency offset estimator and per-line resync")
	bandLimitPtr := flag.Bool("bandlimit", false, "band-pass filter the recording to the SSTV tone range before decoding")
	plotPtr := flag.String("plot", "", "path to write a waveform diagnostic PNG (requires a -tags withplot build; ignored otherwise)")
	logToStderrPtr := flag.Bool("stderr", false, "also log to stderr in addition to the log file")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	var w io.Writer = fileLog
	if *logToStderrPtr {
		w = io.MultiWriter(fileLog, os.Stderr)
	}
	log := logging.New(logVerbosity, w, logSuppress)

	if *inPtr == "" {
		log.Fatal("no input recording path provided, check usage")
	}

	container, err := resolveContainer(*containerPtr, *inPtr)
	if err != nil {
		log.Fatal("could not resolve input container", "error", err.Error())
	}

	cfg := config.Config{
		Direction:      config.DirectionDecode,
		InputPath:      *inPtr,
		InputContainer: container,
		OutputPath:     *outPtr,
		AutoCalibrate:  *autoCalPtr,
		BandLimit:      *bandLimitPtr,
		Logger:         log,
	}
	session, err := sstvsession.New(cfg)
	if err != nil {
		log.Fatal("could not create session", "error", err.Error())
	}
	diag, err := session.Run()
	if err != nil {
		log.Fatal("decode failed", "error", err.Error())
	}

	fmt.Printf("mode: %s\nquality: %s\nfreq offset: %.1f Hz\ndecode time: %s\n",
		diag.ModeName, diag.Quality.Verdict, diag.FreqOffset, diag.DecodeTime)
	for _, warning := range diag.Warnings {
		fmt.Println("warning:", warning)
	}

	if *plotPtr != "" {
		if err := plotWaveform(*inPtr, container, diag, *plotPtr); err != nil {
			log.Warning("could not write diagnostic plot", "error", err.Error())
		}
	}
}

// resolveContainer maps the -container flag to a config input container
// constant, guessing from the file extension when set to "auto".
func resolveContainer(flagVal, path string) (int, error) {
	switch strings.ToLower(flagVal) {
	case "wav":
		return config.InputWAV, nil
	case "flac":
		return config.InputFLAC, nil
	case "auto":
		switch {
		case strings.HasSuffix(strings.ToLower(path), ".flac"):
			return config.InputFLAC, nil
		case strings.HasSuffix(strings.ToLower(path), ".wav"):
			return config.InputWAV, nil
		default:
			return 0, fmt.Errorf("could not guess container from %q, pass -container explicitly", path)
		}
	default:
		return 0, fmt.Errorf("unknown -container value %q", flagVal)
	}
}

// loadSource loads path's samples via the container indicated, for use by
// the diagnostic plot (which needs the raw waveform, not just the decoded
// image).
func loadSource(path string, container int) ([]float32, int, error) {
	var src audiosrc.Source
	switch container {
	case config.InputFLAC:
		src = audiosrc.NewFLACSource(path)
	default:
		src = audiosrc.NewWAVSource(path)
	}
	return src.Load()
}
