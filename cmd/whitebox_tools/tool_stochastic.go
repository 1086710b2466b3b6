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
	"fmt"

	"github.com/spf13/pflag"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/report"
	"github.com/terrakit/wbtcore/internal/stochastic"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "StochasticDepressionAnalysis",
		Usage: "--dem=<file> --output=<file> [--iterations=1000] --rmse=<float> --range=<float> [--report=<html file>]",
		Run:   runStochasticDepressionAnalysis,
	})
}

func runStochasticDepressionAnalysis(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("StochasticDepressionAnalysis", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output per-cell depression-probability raster")
	iterations := fs.Int("iterations", 1000, "number of Monte-Carlo trials")
	rmse := fs.Float64("rmse", 0, "error-model standard deviation, map-z units")
	rng := fs.Float64("range", 0, "spatial-correlation range, map units")
	reportPath := fs.String("report", "", "optional HTML summary report path")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "StochasticDepressionAnalysis", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	out, err := stochastic.Run(demGrid, stochastic.Options{
		Iterations: *iterations,
		RMSE:       *rmse,
		Range:      *rng,
	})
	if err != nil {
		return err
	}
	if err := writeRaster(resolvePath(wd, *output), out); err != nil {
		return err
	}
	if *reportPath == "" {
		return nil
	}
	path := resolvePath(wd, *reportPath)
	if err := writeStochasticReport(path, out, *iterations, *rmse, *rng); err != nil {
		return err
	}
	if verbose {
		return report.Show(path)
	}
	return nil
}

// writeStochasticReport renders a summary HTML page (spec §6 "HTML
// reports"): the run's parameters and a min/mean/max of the output
// probability grid.
func writeStochasticReport(path string, out *grid.GridStore, iterations int, rmse, rng float64) error {
	min, max, ok := out.MinMax()
	var mean float64
	var n int
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Columns; c++ {
			v := out.Get(r, c)
			if out.IsNoData(v) {
				continue
			}
			mean += v
			n++
		}
	}
	if n > 0 {
		mean /= float64(n)
	}
	if !ok {
		min, max = 0, 0
	}
	page := report.Page{
		Title: "Stochastic depression analysis",
		Sections: []report.Section{
			{
				Heading: "Run parameters",
				Table: &report.Table{
					Headers: []string{"iterations", "rmse", "range"},
					Rows:    [][]string{{fmt.Sprint(iterations), fmt.Sprint(rmse), fmt.Sprint(rng)}},
				},
			},
			{
				Heading: "Probability summary",
				Table: &report.Table{
					Headers: []string{"min", "mean", "max", "valid cells"},
					Rows:    [][]string{{fmt.Sprint(min), fmt.Sprint(mean), fmt.Sprint(max), fmt.Sprint(n)}},
				},
			},
		},
	}
	return report.Write(path, page)
}
