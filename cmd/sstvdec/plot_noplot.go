//go:build !withplot
// +build !withplot

/*
DESCRIPTION
  Stands in for plot_withplot.go's waveform renderer in ordinary builds,
  which don't pull in gonum.org/v1/gonum/plot and its transitive font/SVG
  dependencies.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"

	"github.com/ausocean/sstv/codec/sstv"
)

// plotWaveform is a no-op in builds without the withplot tag.
func plotWaveform(path string, container int, diag sstv.Diagnostics, out string) error {
	return fmt.Errorf("sstvdec: built without -tags withplot, cannot write %s", out)
}
