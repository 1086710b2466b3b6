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

	"github.com/terrakit/wbtcore/internal/roughness"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "RuggednessIndex",
		Usage: "--dem=<file> --output=<file> [--sigma=<float>] [--filter=<odd int>]",
		Run:   runRuggednessIndex,
	})
}

func runRuggednessIndex(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("RuggednessIndex", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output mean-angular-deviation raster")
	sigma := fs.Float64("sigma", 1.0, "Gaussian smoothing standard deviation")
	filterSize := fs.Int("filter", 3, "neighborhood-average window side, in cells")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "RuggednessIndex", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	out := roughness.Run(demGrid, roughness.Options{Sigma: *sigma, FilterSize: *filterSize})
	return writeRaster(resolvePath(wd, *output), out)
}
