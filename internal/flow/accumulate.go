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

package flow

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
)

// OutType selects the units of an accumulation output (spec §4.5
// "Output modes").
type OutType int

const (
	OutCells OutType = iota
	OutCatchmentArea
	OutSpecificCatchmentArea
)

// AccumulateOptions configures the topological-sweep accumulation
// (spec §4.5 "Accumulation").
type AccumulateOptions struct {
	OutType              OutType
	LogTransform         bool
	ClipUpperPercentile  bool
	ConvergenceThreshold float64 // D∞/MD∞ only; 0 disables convergence collapse
	Exponent             float64 // MD∞ only; default 1.1
}

const outNoData = -32768

// AccumulateD8 runs the inflow-count topological sweep (spec §4.5
// "Accumulation") over a single-flow-direction pointer, then converts
// the raw cell counts to the requested output units.
func AccumulateD8(ptr *grid.Int8Grid, resX, resY float64, opts AccumulateOptions) *FloatGrid {
	rows, cols := ptr.Rows, ptr.Columns
	out := NewFloatGrid(rows, cols, outNoData)
	inflow := make([]int8, rows*cols)
	idx := func(r, c int) int { return r*cols + c }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ptr.Get(r, c) == -2 {
				inflow[idx(r, c)] = -1
				continue
			}
			out.Set(r, c, 1)
			count := int8(0)
			inflowingVals := [8]int8{4, 5, 6, 7, 0, 1, 2, 3}
			for i := 0; i < 8; i++ {
				if ptr.Get(r+grid.DY[i], c+grid.DX[i]) == inflowingVals[i] {
					count++
				}
			}
			inflow[idx(r, c)] = count
		}
	}

	var stack [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if inflow[idx(r, c)] == 0 {
				stack = append(stack, [2]int{r, c})
			}
		}
	}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := cell[0], cell[1]
		fa := out.Get(r, c)
		dir := ptr.Get(r, c)
		if dir >= 0 {
			rn, cn := r+grid.DY[dir], c+grid.DX[dir]
			out.Set(rn, cn, out.Get(rn, cn)+fa)
			inflow[idx(rn, cn)]--
			if inflow[idx(rn, cn)] == 0 {
				stack = append(stack, [2]int{rn, cn})
			}
		}
	}

	applyOutputMode(out, ptr, resX, resY, opts)
	return out
}

var dInfStartFD = [8]float64{180, 225, 270, 315, 0, 45, 90, 135}
var dInfEndFD = [8]float64{270, 315, 360, 45, 90, 135, 180, 225}

// AccumulateDInf runs the D-infinity variant: each cell splits its flow
// between the two neighbors bracketing its descent angle, in
// proportion to how close the angle sits to each bracket edge. A
// convergence threshold, once the accumulated value exceeds it,
// collapses the split to whichever neighbor holds the larger share
// (spec §4.5).
func AccumulateDInf(angle *FloatGrid, resX, resY float64, opts AccumulateOptions) *FloatGrid {
	rows, cols := angle.Rows, angle.Columns
	out := NewFloatGrid(rows, cols, 1)
	inflow := make([]int8, rows*cols)
	for i := range inflow {
		inflow[i] = -1
	}
	idx := func(r, c int) int { return r*cols + c }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dir := angle.Get(r, c)
			if dir == dInfNoData {
				continue
			}
			count := int8(0)
			for i := 0; i < 8; i++ {
				nd := angle.Get(r+grid.DY[i], c+grid.DX[i])
				if nd < 0 {
					continue
				}
				if i != 3 {
					if nd > dInfStartFD[i] && nd < dInfEndFD[i] {
						count++
					}
				} else if nd > dInfStartFD[i] || nd < dInfEndFD[i] {
					count++
				}
			}
			inflow[idx(r, c)] = count
		}
	}

	var stack [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if inflow[idx(r, c)] == 0 {
				stack = append(stack, [2]int{r, c})
			}
		}
	}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := cell[0], cell[1]
		fa := out.Get(r, c)
		dir := angle.Get(r, c)
		if dir < 0 {
			continue
		}

		a1, b1, a2, b2, p1, p2 := dInfBracket(r, c, dir)

		if opts.ConvergenceThreshold > 0 && fa >= opts.ConvergenceThreshold {
			if p1 >= p2 {
				p1, p2 = 1, 0
			} else {
				p1, p2 = 0, 1
			}
		}

		if p1 > 0 {
			out.Set(b1, a1, out.Get(b1, a1)+fa*p1)
			inflow[idx(b1, a1)]--
			if inflow[idx(b1, a1)] == 0 {
				stack = append(stack, [2]int{b1, a1})
			}
		}
		if p2 > 0 {
			out.Set(b2, a2, out.Get(b2, a2)+fa*p2)
			inflow[idx(b2, a2)]--
			if inflow[idx(b2, a2)] == 0 {
				stack = append(stack, [2]int{b2, a2})
			}
		}
	}

	applyOutputModeDInf(out, angle, resX, resY, opts)
	return out
}

// dInfBracket returns the two downslope cells bracketing angle dir
// (degrees, 0=north clockwise) and the proportion owed to each.
func dInfBracket(row, col int, dir float64) (a1, b1, a2, b2 int, p1, p2 float64) {
	switch {
	case dir < 45:
		return col, row - 1, col + 1, row - 1, (45 - dir) / 45, dir / 45
	case dir < 90:
		return col + 1, row - 1, col + 1, row, (90 - dir) / 45, (dir - 45) / 45
	case dir < 135:
		return col + 1, row, col + 1, row + 1, (135 - dir) / 45, (dir - 90) / 45
	case dir < 180:
		return col + 1, row + 1, col, row + 1, (180 - dir) / 45, (dir - 135) / 45
	case dir < 225:
		return col, row + 1, col - 1, row + 1, (225 - dir) / 45, (dir - 180) / 45
	case dir < 270:
		return col - 1, row + 1, col - 1, row, (270 - dir) / 45, (dir - 225) / 45
	case dir < 315:
		return col - 1, row, col - 1, row - 1, (315 - dir) / 45, (dir - 270) / 45
	default:
		return col - 1, row - 1, col, row - 1, (360 - dir) / 45, (dir - 315) / 45
	}
}

// AccumulateMDInf runs the MD-infinity variant: each cell distributes
// flow across all downslope neighbors in the facet-derived proportions
// computed by mdInfWeights, sharpened by opts.Exponent. Once a cell's
// accumulated value exceeds the convergence threshold, flow collapses
// to its single steepest-descent neighbor, matching D8 behavior in the
// high-order-stream limit (spec §4.5).
func AccumulateMDInf(dem *grid.GridStore, opts AccumulateOptions) *FloatGrid {
	rows, cols := dem.Rows, dem.Columns
	exponent := opts.Exponent
	if exponent == 0 {
		exponent = 1.1
	}
	out := NewFloatGrid(rows, cols, 1)
	inflow := make([]int8, rows*cols)
	idx := func(r, c int) int { return r*cols + c }

	downslopeFlag := make([][8]bool, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				continue
			}
			for i := 0; i < 8; i++ {
				zn := dem.Get(r+grid.DY[i], c+grid.DX[i])
				if !dem.IsNoData(zn) && zn < z {
					downslopeFlag[idx(r, c)][i] = true
				}
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				inflow[idx(r, c)] = 0
				continue
			}
			count := int8(0)
			for i := 0; i < 8; i++ {
				nr, nc := r+grid.DY[i], c+grid.DX[i]
				back := grid.BackLink(i)
				if downslopeFlag[idx(nr, nc)][back] {
					count++
				}
			}
			inflow[idx(r, c)] = count
		}
	}

	var stack [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !dem.IsNoData(dem.Get(r, c)) && inflow[idx(r, c)] == 0 {
				stack = append(stack, [2]int{r, c})
			}
		}
	}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := cell[0], cell[1]
		fa := out.Get(r, c)

		var weights [8]float64
		var downslope [8]bool
		if opts.ConvergenceThreshold <= 0 || fa < opts.ConvergenceThreshold {
			weights, downslope = mdInfWeights(dem, r, c, exponent)
		}
		total := 0.0
		for _, w := range weights {
			total += w
		}
		if total <= 0 {
			downslope = downslopeFlag[idx(r, c)]
			dir, maxSlope := -1, math.Inf(-1)
			for i := 0; i < 8; i++ {
				if !downslope[i] {
					continue
				}
				zn := dem.Get(r+grid.DY[i], c+grid.DX[i])
				slope := (dem.Get(r, c) - zn) / dem.StepLength(i)
				if slope > maxSlope {
					maxSlope = slope
					dir = i
				}
			}
			if dir >= 0 {
				weights[dir] = 1
				total = 1
			}
		}

		for i := 0; i < 8; i++ {
			if !downslope[i] {
				continue
			}
			nr, nc := r+grid.DY[i], c+grid.DX[i]
			if total > 0 && weights[i] > 0 {
				out.Set(nr, nc, out.Get(nr, nc)+fa*(weights[i]/total))
			}
			inflow[idx(nr, nc)]--
			if inflow[idx(nr, nc)] == 0 {
				stack = append(stack, [2]int{nr, nc})
			}
		}
	}

	applyOutputModeDEM(out, dem, opts)
	return out
}

func applyOutputMode(out *FloatGrid, ptr *grid.Int8Grid, resX, resY float64, opts AccumulateOptions) {
	cellArea, flowWidth := outputUnits(resX, resY, opts.OutType)
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Columns; c++ {
			if ptr.Get(r, c) == -2 {
				out.Set(r, c, outNoData)
				continue
			}
			v := out.Get(r, c) * cellArea / flowWidth
			if opts.LogTransform {
				v = math.Log(v)
			}
			out.Set(r, c, v)
		}
	}
	if opts.ClipUpperPercentile {
		clipUpperPercentile(out)
	}
}

func applyOutputModeDInf(out *FloatGrid, angle *FloatGrid, resX, resY float64, opts AccumulateOptions) {
	cellArea, flowWidth := outputUnits(resX, resY, opts.OutType)
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Columns; c++ {
			if angle.Get(r, c) == dInfNoData {
				out.Set(r, c, outNoData)
				continue
			}
			v := out.Get(r, c) * cellArea / flowWidth
			if opts.LogTransform {
				v = math.Log(v)
			}
			out.Set(r, c, v)
		}
	}
	if opts.ClipUpperPercentile {
		clipUpperPercentile(out)
	}
}

func applyOutputModeDEM(out *FloatGrid, dem *grid.GridStore, opts AccumulateOptions) {
	cellArea, flowWidth := outputUnits(dem.ResolutionX, dem.ResolutionY, opts.OutType)
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Columns; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				out.Set(r, c, outNoData)
				continue
			}
			v := out.Get(r, c) * cellArea / flowWidth
			if opts.LogTransform {
				v = math.Log(v)
			}
			out.Set(r, c, v)
		}
	}
	if opts.ClipUpperPercentile {
		clipUpperPercentile(out)
	}
}

// outputUnits returns the constant cell-area and flow-width factors
// for the requested output type. Flow width is held constant across
// directions rather than varying cardinal/diagonal, a deliberate
// simplification carried over from the reference tool to keep
// downstream accumulation monotonically non-decreasing (spec §7 open
// question).
func outputUnits(resX, resY float64, outType OutType) (cellArea, flowWidth float64) {
	avg := (resX + resY) / 2
	switch outType {
	case OutCells:
		return 1, 1
	case OutCatchmentArea:
		return resX * resY, 1
	default: // OutSpecificCatchmentArea
		return resX * resY, avg
	}
}

func clipUpperPercentile(out *FloatGrid) {
	vals := make([]float64, 0, len(out.data))
	for _, v := range out.data {
		if v != outNoData {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return
	}
	sorted := append([]float64(nil), vals...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	idx := int(0.99 * float64(len(sorted)-1))
	clip := sorted[idx]
	for i, v := range out.data {
		if v != outNoData && v > clip {
			out.data[i] = clip
		}
	}
}
