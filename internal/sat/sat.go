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

// Package sat implements SummedAreaTable (spec §4.3): an integral image
// of values (Sigma-v) and valid-cell counts (Sigma-1) built in one pass
// over a 2-D grid, answering rectangular-region sum/mean/count in O(1).
package sat

import "github.com/terrakit/wbtcore/internal/grid"

// Table holds the cumulative-sum arrays. It is built once from a
// GridStore and queried any number of times.
type Table struct {
	rows, cols int
	sumV       []float64 // cumulative sum of values, (rows+1)x(cols+1)
	sumN       []float64 // cumulative sum of valid-cell counts
}

// Build computes the summed-area table of g's cell values in one pass.
// Nodata cells contribute 0 to both Sigma-v and Sigma-1 (spec §4.3).
func Build(g *grid.GridStore) *Table {
	rows, cols := g.Rows, g.Columns
	t := &Table{rows: rows, cols: cols,
		sumV: make([]float64, (rows+1)*(cols+1)),
		sumN: make([]float64, (rows+1)*(cols+1)),
	}
	stride := cols + 1
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := g.Get(r, c)
			var vv, nn float64
			if !g.IsNoData(v) {
				vv, nn = v, 1
			}
			t.sumV[(r+1)*stride+(c+1)] = vv + t.sumV[r*stride+(c+1)] + t.sumV[(r+1)*stride+c] - t.sumV[r*stride+c]
			t.sumN[(r+1)*stride+(c+1)] = nn + t.sumN[r*stride+(c+1)] + t.sumN[(r+1)*stride+c] - t.sumN[r*stride+c]
		}
	}
	return t
}

// BuildFromValues computes a summed-area table directly over a
// rows x cols row-major slice, treating NaN as the invalid/nodata marker.
// Used by RoughnessEngine to aggregate angular-deviation fields that
// are not themselves GridStores.
func BuildFromValues(values []float64, rows, cols int, isInvalid func(float64) bool) *Table {
	t := &Table{rows: rows, cols: cols,
		sumV: make([]float64, (rows+1)*(cols+1)),
		sumN: make([]float64, (rows+1)*(cols+1)),
	}
	stride := cols + 1
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := values[r*cols+c]
			var vv, nn float64
			if !isInvalid(v) {
				vv, nn = v, 1
			}
			t.sumV[(r+1)*stride+(c+1)] = vv + t.sumV[r*stride+(c+1)] + t.sumV[(r+1)*stride+c] - t.sumV[r*stride+c]
			t.sumN[(r+1)*stride+(c+1)] = nn + t.sumN[r*stride+(c+1)] + t.sumN[(r+1)*stride+c] - t.sumN[r*stride+c]
		}
	}
	return t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rectSum returns Sigma over [r0,r1) x [c0,c1), with the rectangle
// clamped to [0,rows) x [0,cols) (spec §4.3 edge policy).
func rectSum(cum []float64, stride, rows, cols, r0, c0, r1, c1 int) float64 {
	r0 = clamp(r0, 0, rows)
	r1 = clamp(r1, 0, rows)
	c0 = clamp(c0, 0, cols)
	c1 = clamp(c1, 0, cols)
	if r1 <= r0 || c1 <= c0 {
		return 0
	}
	return cum[r1*stride+c1] - cum[r0*stride+c1] - cum[r1*stride+c0] + cum[r0*stride+c0]
}

// Sum returns Sigma-v over the half-open rectangle [r0,r1) x [c0,c1).
func (t *Table) Sum(r0, c0, r1, c1 int) float64 {
	return rectSum(t.sumV, t.cols+1, t.rows, t.cols, r0, c0, r1, c1)
}

// Count returns Sigma-1 (valid-cell count) over the same rectangle.
func (t *Table) Count(r0, c0, r1, c1 int) float64 {
	return rectSum(t.sumN, t.cols+1, t.rows, t.cols, r0, c0, r1, c1)
}

// Mean returns the mean value over the rectangle and nodata if the
// rectangle's valid-cell count is 0.
func (t *Table) Mean(r0, c0, r1, c1 int, nodata float64) float64 {
	n := t.Count(r0, c0, r1, c1)
	if n == 0 {
		return nodata
	}
	return t.Sum(r0, c0, r1, c1) / n
}

// WindowMean returns the mean of a (2*radius+1) square window centered
// at (row, col) using this table, or nodata if the window has no valid
// cells. This is the primitive RoughnessEngine's neighborhood average
// and SmoothingEngine's box-filter passes build on.
func (t *Table) WindowMean(row, col, radius int, nodata float64) float64 {
	return t.Mean(row-radius, col-radius, row+radius+1, col+radius+1, nodata)
}
