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

// Package morphology implements MorphologyEngine (spec §4.12):
// grayscale dilation, erosion, opening, closing, and the white/black
// top-hat transforms built from them, each a separable F_x-by-F_y
// sliding-window filter evaluated in two passes (vertical extremum,
// then horizontal extremum over the buffered column results) so that
// every cell is touched O(filter_size) times rather than O(filter_size^2).
package morphology

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
	"github.com/terrakit/wbtcore/internal/workerpool"
)

// Options configures a filter window. FilterSizeX and FilterSizeY are
// forced to the next odd value, the standard odd-window normalization
// used throughout this package.
type Options struct {
	FilterSizeX int
	FilterSizeY int
}

func (o Options) normalize() (fx, fy, midX, midY int) {
	fx, fy = o.FilterSizeX, o.FilterSizeY
	if fx < 1 {
		fx = 1
	}
	if fy < 1 {
		fy = 1
	}
	if fx%2 == 0 {
		fx++
	}
	if fy%2 == 0 {
		fy++
	}
	return fx, fy, fx / 2, fy / 2
}

// Dilate returns the grayscale dilation of input: the maximum value
// within each cell's filter-size window, skipping no-data neighbors.
func Dilate(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	return slidingExtremum(input, opts, true)
}

// Erode returns the grayscale erosion of input: the minimum value
// within each cell's filter-size window, skipping no-data neighbors.
func Erode(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	return slidingExtremum(input, opts, false)
}

// Open returns the morphological opening of input: erosion followed by
// dilation, which removes small bright features narrower than the
// window.
func Open(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	eroded, err := Erode(input, opts)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, opts)
}

// Close returns the morphological closing of input: dilation followed
// by erosion, which fills small dark features narrower than the
// window.
func Close(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	dilated, err := Dilate(input, opts)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, opts)
}

// WhiteTopHat returns input minus its opening, highlighting small
// bright features (peaks and ridges narrower than the window).
func WhiteTopHat(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	opened, err := Open(input, opts)
	if err != nil {
		return nil, err
	}
	out := grid.InitializeLike(input, input.NoData)
	for r := 0; r < input.Rows; r++ {
		for c := 0; c < input.Columns; c++ {
			z := input.Get(r, c)
			o := opened.Get(r, c)
			if input.IsNoData(z) || opened.IsNoData(o) {
				continue
			}
			out.Set(r, c, z-o)
		}
	}
	return out, nil
}

// BlackTopHat returns input's closing minus input, highlighting small
// dark features (pits and channels narrower than the window).
func BlackTopHat(input *grid.GridStore, opts Options) (*grid.GridStore, error) {
	closed, err := Close(input, opts)
	if err != nil {
		return nil, err
	}
	out := grid.InitializeLike(input, input.NoData)
	for r := 0; r < input.Rows; r++ {
		for c := 0; c < input.Columns; c++ {
			z := input.Get(r, c)
			cl := closed.Get(r, c)
			if input.IsNoData(z) || closed.IsNoData(cl) {
				continue
			}
			out.Set(r, c, cl-z)
		}
	}
	return out, nil
}

// slidingExtremum computes, for every cell, the max (dilation=true) or
// min (dilation=false) over its FilterSizeX-by-FilterSizeY window.
// Each row first reduces every column in [col-midX, col+midX] down to
// its vertical extremum over [row-midY, row+midY] (recomputed
// incrementally as the window slides one column at a time), then takes
// the extremum of the FilterSizeX buffered column values. No-data
// cells are excluded from the window statistic and never appear in
// the output.
func slidingExtremum(input *grid.GridStore, opts Options, dilation bool) (*grid.GridStore, error) {
	if input == nil {
		return nil, wberr.New(wberr.InvalidParam, "MorphologyEngine", "input grid is nil")
	}
	fx, _, midX, midY := opts.normalize()
	rows, cols := input.Rows, input.Columns

	results, err := workerpool.Run(rows, func(row int) (interface{}, error) {
		startRow, endRow := row-midY, row+midY
		colVals := make([]float64, fx)
		data := make([]float64, cols)
		for c := range data {
			data[c] = input.NoData
		}

		verticalExtreme := func(col int) float64 {
			best := extremeInit(dilation)
			found := false
			for r := startRow; r <= endRow; r++ {
				if r < 0 || r >= rows {
					continue
				}
				z := input.Get(r, col)
				if input.IsNoData(z) {
					continue
				}
				if !found || better(z, best, dilation) {
					best = z
					found = true
				}
			}
			if !found {
				return extremeInit(dilation)
			}
			return best
		}

		for col := 0; col < cols; col++ {
			if col > 0 {
				colVals = colVals[1:]
				nextCol := col + midX
				var v float64
				if nextCol >= 0 && nextCol < cols {
					v = verticalExtreme(nextCol)
				} else {
					v = extremeInit(dilation)
				}
				colVals = append(colVals, v)
			} else {
				colVals = colVals[:0]
				for c2 := col - midX; c2 <= col+midX; c2++ {
					var v float64
					if c2 >= 0 && c2 < cols {
						v = verticalExtreme(c2)
					} else {
						v = extremeInit(dilation)
					}
					colVals = append(colVals, v)
				}
			}

			z := input.Get(row, col)
			if input.IsNoData(z) {
				continue
			}
			best := extremeInit(dilation)
			found := false
			for _, v := range colVals {
				if dilation && v == negInf || !dilation && v == posInf {
					continue
				}
				if !found || better(v, best, dilation) {
					best = v
					found = true
				}
			}
			if found {
				data[col] = best
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, wberr.Wrap(wberr.NumericError, "MorphologyEngine", err)
	}

	out := grid.InitializeLike(input, input.NoData)
	for _, res := range results {
		row := res.Row
		data := res.Payload.([]float64)
		for c := 0; c < cols; c++ {
			out.Set(row, c, data[c])
		}
	}
	return out, nil
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

func extremeInit(dilation bool) float64 {
	if dilation {
		return negInf
	}
	return posInf
}

func better(candidate, current float64, dilation bool) bool {
	if dilation {
		return candidate > current
	}
	return candidate < current
}
