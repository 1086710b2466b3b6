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

package roughness

import (
	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/sat"
)

// Options configures a RoughnessEngine run.
type Options struct {
	Sigma      float64 // Gaussian smoothing standard deviation
	FilterSize int     // neighborhood-average window side, in cells
}

// Run computes the average normal-vector angular deviation surface
// (spec §4.7): normals of the input surface, normals of a smoothed copy,
// their per-cell angular deviation, and the mean of that deviation
// field over a (FilterSize x FilterSize) window.
func Run(dem *grid.GridStore, opts Options) *grid.GridStore {
	original := ComputeNormals(dem)
	smoothedDEM := Smooth(dem, opts.Sigma)
	smoothedNormals := ComputeNormals(smoothedDEM)

	rows, cols := dem.Rows, dem.Columns
	deviation := make([]float64, rows*cols)
	isNoData := func(v float64) bool { return v != v } // NaN sentinel
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				deviation[r*cols+c] = nan()
				continue
			}
			deviation[r*cols+c] = AngularDeviation(original.Get(r, c), smoothedNormals.Get(r, c))
		}
	}

	table := sat.BuildFromValues(deviation, rows, cols, isNoData)
	radius := opts.FilterSize / 2

	out := grid.InitializeLike(dem, dem.NoData)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				continue
			}
			mean := table.WindowMean(r, c, radius, dem.NoData)
			out.Set(r, c, mean)
		}
	}
	return out
}

func nan() float64 {
	var zero float64
	return zero / zero
}
