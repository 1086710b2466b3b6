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

	"github.com/terrakit/wbtcore/internal/depression"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "FillDepressions",
		Usage: "--dem=<file> --output=<file> [--max_depth=<float>] [--fix_flats]",
		Run:   runFillDepressions,
	})
	register(Tool{
		Name:  "FindPits",
		Usage: "--dem=<file> --output=<file>",
		Run:   runFindPits,
	})
}

func runFillDepressions(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("FillDepressions", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output filled DEM")
	maxDepth := fs.Float64("max_depth", 0, "cap on how far a cell may be raised; 0 = unlimited")
	fixFlats := fs.Bool("fix_flats", false, "resolve flat areas left by filling with a tiny imposed gradient")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "FillDepressions", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	filled := depression.Fill(demGrid, depression.FillOptions{MaxDepth: *maxDepth})
	if *fixFlats {
		filled = depression.ResolveFlats(demGrid, filled, depression.DefaultDelta(demGrid))
	}
	return writeRaster(resolvePath(wd, *output), filled)
}

func runFindPits(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("FindPits", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output pit-indicator raster")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "FindPits", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	pits, err := depression.FindPits(demGrid)
	if err != nil {
		return err
	}
	out := demGrid.Clone()
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Columns; c++ {
			if !out.IsNoData(out.Get(r, c)) {
				out.Set(r, c, 0)
			}
		}
	}
	for _, p := range pits {
		out.Set(p.Row, p.Col, 1)
	}
	advise("FindPits", "pit count: "+itoa(len(pits)))
	return writeRaster(resolvePath(wd, *output), out)
}
