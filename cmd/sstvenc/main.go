/*
DESCRIPTION
  sstvenc is a command line tool that synthesizes an SSTV transmission
  from a PNG or JPEG image.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements sstvenc, an image-to-SSTV-WAV command line tool.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/sstv/sstvsession"
	"github.com/ausocean/sstv/sstvsession/config"
)

// Logging configuration.
const (
	logPath      = "sstvenc.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

const defaultSampleRate = 48000

func main() {
	inPtr := flag.String("in", "", "path to the source PNG or JPEG image")
	outPtr := flag.String("out", "out.wav", "path to write the synthesized WAV recording")
	modePtr := flag.String("mode", "ROBOT36", "SSTV mode: ROBOT36, MARTIN1, SCOTTIE1 or PD120")
	ratePtr := flag.Int("rate", defaultSampleRate, "sample rate in Hz for the synthesized recording")
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
		log.Fatal("no input image path provided, check usage")
	}

	cfg := config.Config{
		Direction:  config.DirectionEncode,
		Mode:       *modePtr,
		InputPath:  *inPtr,
		OutputPath: *outPtr,
		SampleRate: *ratePtr,
		Logger:     log,
	}
	session, err := sstvsession.New(cfg)
	if err != nil {
		log.Fatal("could not create session", "error", err.Error())
	}
	if _, err := session.Run(); err != nil {
		log.Fatal("encode failed", "error", err.Error())
	}
	log.Info("encode complete", "out", *outPtr)
}
