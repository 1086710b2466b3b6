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
	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/obs"
	"github.com/terrakit/wbtcore/internal/rasterio"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// advise prints a non-fatal advisory (spec §7: "Advisories are printed
// but do not change the exit code").
func advise(tool, msg string) {
	obs.Advise(tool, "run", msg)
}

// Tool is one entry in the CLI's tool registry (spec §3's "tool
// registry/help subsystem", an external collaborator the engines
// themselves know nothing about).
type Tool struct {
	Name  string
	Usage string
	Run   func(wd string, args []string, verbose bool) error
}

// registry is populated by each tool_*.go file's init().
var registry = map[string]Tool{}

func register(t Tool) {
	registry[t.Name] = t
}

// readRaster loads a Grid through the format the path's extension
// names (spec §6 "Raster I/O"), wrapping any failure as an IoError.
func readRaster(path string) (*grid.GridStore, error) {
	g, err := rasterio.Read(path)
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio", err)
	}
	return g, nil
}

// writeRaster saves g to path in the format its extension names.
func writeRaster(path string, g *grid.GridStore) error {
	if err := rasterio.Write(path, g); err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio", err)
	}
	return nil
}

// int8ToFloatGrid lifts a flow-direction/pointer Int8Grid into a
// GridStore so it can go through the raster I/O boundary, which only
// knows about floating-point cell values.
func int8ToFloatGrid(like *grid.GridStore, src *grid.Int8Grid, nodata float64) *grid.GridStore {
	out := grid.New(like.Rows, like.Columns, like.North, like.South, like.East, like.West, nodata)
	for r := 0; r < src.Rows; r++ {
		for c := 0; c < src.Columns; c++ {
			v := src.Get(r, c)
			if v == -2 {
				out.Set(r, c, nodata)
				continue
			}
			out.Set(r, c, float64(v))
		}
	}
	return out
}

// floatGridToInt8 lowers a raster-loaded pointer grid back into an
// Int8Grid for FlowEngine's internal pointer-decoding functions.
func floatGridToInt8(g *grid.GridStore) *grid.Int8Grid {
	out := grid.NewInt8Grid(g.Rows, g.Columns, -2)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			v := g.Get(r, c)
			if g.IsNoData(v) {
				continue
			}
			out.Set(r, c, int8(v))
		}
	}
	return out
}
