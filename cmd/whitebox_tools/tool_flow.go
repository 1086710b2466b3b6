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

	"github.com/terrakit/wbtcore/internal/flow"
	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "D8Pointer",
		Usage: "--dem=<file> --output=<file> [--esri_pntr]",
		Run:   runD8Pointer,
	})
	register(Tool{
		Name:  "DInfPointer",
		Usage: "--dem=<file> --output=<file>",
		Run:   runDInfPointer,
	})
	register(Tool{
		Name:  "D8FlowAccumulation",
		Usage: "--dem=<file> --output=<file> [--out_type=cells|ca|sca] [--log] [--clip]",
		Run:   runAccum(flow.D8),
	})
	register(Tool{
		Name:  "DInfFlowAccumulation",
		Usage: "--dem=<file> --output=<file> [--out_type=cells|ca|sca] [--log] [--clip]",
		Run:   runAccum(flow.DInf),
	})
	register(Tool{
		Name:  "MDInfFlowAccumulation",
		Usage: "--dem=<file> --output=<file> [--out_type=cells|ca|sca] [--exponent=1.1] [--log] [--clip]",
		Run:   runAccum(flow.MDInf),
	})
	register(Tool{
		Name:  "FlowAccumulationFullWorkflow",
		Usage: "--dem=<file> --out_dem=<file> --out_accum=<file> [--out_type=cells|ca|sca] [--log] [--clip]",
		Run:   runFullWorkflow,
	})
}

func runD8Pointer(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("D8Pointer", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output pointer raster")
	esri := fs.Bool("esri_pntr", false, "write ESRI pointer encoding instead of Whitebox")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "D8Pointer", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	res := flow.D8Pointer(demGrid)
	if res.InteriorPitsFound {
		advise("D8Pointer", "interior pits found in DEM; consider depression filling first")
	}
	enc := flow.EncodeWhitebox(res.Pointer)
	if *esri {
		enc = flow.EncodeESRI(res.Pointer)
	}
	return writeRaster(resolvePath(wd, *output), int8ToFloatGrid(demGrid, enc, -2))
}

func runDInfPointer(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("DInfPointer", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output angle raster (degrees)")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "DInfPointer", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	res := flow.DInfPointer(demGrid)
	if res.InteriorPitsFound {
		advise("DInfPointer", "interior pits found in DEM; consider depression filling first")
	}
	out := grid.New(demGrid.Rows, demGrid.Columns, demGrid.North, demGrid.South, demGrid.East, demGrid.West, res.Angle.NoData)
	for r := 0; r < res.Angle.Rows; r++ {
		for c := 0; c < res.Angle.Columns; c++ {
			out.Set(r, c, res.Angle.Get(r, c))
		}
	}
	return writeRaster(resolvePath(wd, *output), out)
}

func runAccum(model flow.Model) func(string, []string, bool) error {
	return func(wd string, args []string, verbose bool) error {
		fs := pflag.NewFlagSet("FlowAccumulation", pflag.ContinueOnError)
		dem := fs.String("dem", "", "input (conditioned) DEM")
		output := fs.String("output", "", "output accumulation raster")
		outType := fs.String("out_type", "cells", "cells|ca|sca")
		logTransform := fs.Bool("log", false, "apply a log transform to the output")
		clip := fs.Bool("clip", false, "clip the upper 1% of values")
		exponent := fs.Float64("exponent", 1.1, "MD-infinity divergence exponent")
		if err := fs.Parse(args); err != nil {
			return wberr.Wrap(wberr.InvalidParam, "FlowAccumulation", err)
		}
		demGrid, err := readRaster(resolvePath(wd, *dem))
		if err != nil {
			return err
		}
		opts := flow.AccumulateOptions{
			OutType:             parseOutType(*outType),
			LogTransform:        *logTransform,
			ClipUpperPercentile: *clip,
			Exponent:            *exponent,
		}
		out, interiorPits, err := flow.Accumulate(demGrid, model, opts)
		if err != nil {
			return err
		}
		if interiorPits {
			advise("FlowAccumulation", "interior pits found in DEM; consider depression filling first")
		}
		return writeRaster(resolvePath(wd, *output), out)
	}
}

func runFullWorkflow(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("FlowAccumulationFullWorkflow", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	outDEM := fs.String("out_dem", "", "output conditioned DEM")
	outAccum := fs.String("out_accum", "", "output accumulation raster")
	outType := fs.String("out_type", "cells", "cells|ca|sca")
	logTransform := fs.Bool("log", false, "apply a log transform to the output")
	clip := fs.Bool("clip", false, "clip the upper 1% of values")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "FlowAccumulationFullWorkflow", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	conditioned, accum, adv, err := flow.FullWorkflow(demGrid, flow.FullWorkflowOptions{
		Accumulate: flow.AccumulateOptions{
			OutType:             parseOutType(*outType),
			LogTransform:        *logTransform,
			ClipUpperPercentile: *clip,
		},
	})
	if err != nil {
		return err
	}
	if adv != nil {
		advise("FlowAccumulationFullWorkflow", adv.String())
	}
	if err := writeRaster(resolvePath(wd, *outDEM), conditioned); err != nil {
		return err
	}
	return writeRaster(resolvePath(wd, *outAccum), accum)
}

func parseOutType(s string) flow.OutType {
	switch s {
	case "ca":
		return flow.OutCatchmentArea
	case "sca":
		return flow.OutSpecificCatchmentArea
	default:
		return flow.OutCells
	}
}
