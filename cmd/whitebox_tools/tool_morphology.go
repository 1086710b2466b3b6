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
	"github.com/Knetic/govaluate"
	"github.com/spf13/pflag"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/morphology"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "WhiteTophatTransform",
		Usage: "--dem=<file> --output=<file> [--filterx=11] [--filtery=11] [--threshold_expr=<expr>]",
		Run:   runTopHat(false),
	})
	register(Tool{
		Name:  "BlackTophatTransform",
		Usage: "--dem=<file> --output=<file> [--filterx=11] [--filtery=11] [--threshold_expr=<expr>]",
		Run:   runTopHat(true),
	})
}

func runTopHat(black bool) func(string, []string, bool) error {
	return func(wd string, args []string, verbose bool) error {
		fs := pflag.NewFlagSet("TophatTransform", pflag.ContinueOnError)
		dem := fs.String("dem", "", "input grid")
		output := fs.String("output", "", "output top-hat raster")
		filterX := fs.Int("filterx", 11, "filter width, in cells (forced odd)")
		filterY := fs.Int("filtery", 11, "filter height, in cells (forced odd)")
		thresholdExpr := fs.String("threshold_expr", "", "optional boolean expression over `value`; cells where it evaluates false are set to nodata")
		if err := fs.Parse(args); err != nil {
			return wberr.Wrap(wberr.InvalidParam, "TophatTransform", err)
		}
		input, err := readRaster(resolvePath(wd, *dem))
		if err != nil {
			return err
		}
		opts := morphology.Options{FilterSizeX: *filterX, FilterSizeY: *filterY}
		var out *grid.GridStore
		if black {
			out, err = morphology.BlackTopHat(input, opts)
		} else {
			out, err = morphology.WhiteTopHat(input, opts)
		}
		if err != nil {
			return err
		}
		if *thresholdExpr != "" {
			if err := applyThresholdExpr(out, *thresholdExpr); err != nil {
				return err
			}
		}
		return writeRaster(resolvePath(wd, *output), out)
	}
}

// applyThresholdExpr is CLI-layer sugar (spec §6.16), not part of the
// top-hat algorithm: cells where expr evaluates false are overwritten
// with nodata. The expression sees a single variable, `value`.
func applyThresholdExpr(g *grid.GridStore, expr string) error {
	evaluable, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return wberr.Wrap(wberr.InvalidParam, "TophatTransform", err)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			v := g.Get(r, c)
			if g.IsNoData(v) {
				continue
			}
			result, err := evaluable.Evaluate(map[string]interface{}{"value": v})
			if err != nil {
				return wberr.Wrap(wberr.InvalidParam, "TophatTransform", err)
			}
			keep, ok := result.(bool)
			if !ok {
				return wberr.New(wberr.InvalidParam, "TophatTransform", "threshold_expr must evaluate to a boolean")
			}
			if !keep {
				g.Set(r, c, g.NoData)
			}
		}
	}
	return nil
}
