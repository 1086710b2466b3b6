/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"github.com/spf13/pflag"

	"github.com/terrakit/wbtcore/internal/smoothing"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "FeaturePreservingSmoothing",
		Usage: "--dem=<file> --output=<file> [--iterations=3] [--filter=11] [--norm_diff=15] [--max_diff=<float>]",
		Run:   runFeaturePreservingSmoothing,
	})
}

func runFeaturePreservingSmoothing(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("FeaturePreservingSmoothing", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output smoothed DEM")
	def := smoothing.DefaultOptions()
	iterations := fs.Int("iterations", def.Iterations, "number of smoothing passes")
	filterSize := fs.Int("filter", def.FilterSize, "normal-field smoothing window side, in cells")
	normDiff := fs.Float64("norm_diff", def.ThresholdDegrees, "maximum angular difference admitted into a normal's neighborhood average, in degrees")
	maxDiff := fs.Float64("max_diff", 0, "maximum elevation change per cell; 0 = unbounded")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "FeaturePreservingSmoothing", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	opts := smoothing.Options{
		Iterations:       *iterations,
		FilterSize:       *filterSize,
		ThresholdDegrees: *normDiff,
	}
	if *maxDiff > 0 {
		opts.HasMaxDiff = true
		opts.MaxDiff = *maxDiff
	}
	out := smoothing.Run(demGrid, opts)
	return writeRaster(resolvePath(wd, *output), out)
}
