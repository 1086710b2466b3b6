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

// Package smoothing implements SmoothingEngine (spec §4.8):
// feature-preserving iterative elevation smoothing driven by a
// normal-angle threshold, so that sharp breaks (ridges, channel banks)
// resist blurring while gentle terrain is smoothed freely.
package smoothing

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/roughness"
)

// Options configures a SmoothingEngine run.
type Options struct {
	Iterations       int     // default 3
	FilterSize       int     // normal-field smoothing window side, default 11
	ThresholdDegrees float64 // default 15
	HasMaxDiff       bool
	MaxDiff          float64
}

// DefaultOptions returns the documented default parameterization.
func DefaultOptions() Options {
	return Options{Iterations: 3, FilterSize: 11, ThresholdDegrees: 15}
}

// Run smooths dem's elevations in place of its topology: normals are
// computed once, smoothed once over a (FilterSize x FilterSize) window,
// and the elevation surface is reconstructed from that fixed smoothed
// normal field for Options.Iterations passes.
func Run(dem *grid.GridStore, opts Options) *grid.GridStore {
	if opts.Iterations <= 0 {
		opts.Iterations = 1
	}

	normals := roughness.ComputeNormals(dem)
	smoothed := smoothNormalField(dem, normals, opts.FilterSize, opts.ThresholdDegrees)

	current := dem
	for i := 0; i < opts.Iterations; i++ {
		current = reconstructElevations(dem, current, smoothed, opts)
	}
	return current
}

// smoothNormalField averages each cell's normal with its neighbors
// over a (filterSize x filterSize) window, weighting each neighbor by
// w = (cos(angle) - cos(threshold))^2 whenever cos(angle) exceeds
// cos(threshold), so normals that diverge sharply from the center do
// not pull the average toward them (spec §4.8 step 2).
func smoothNormalField(dem *grid.GridStore, normals *grid.NormalGrid, filterSize int, thresholdDegrees float64) *grid.NormalGrid {
	radius := filterSize / 2
	thresholdCos := math.Cos(thresholdDegrees * math.Pi / 180)

	out := grid.NewNormalGrid(dem.Rows, dem.Columns)
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				continue
			}
			center := normals.Get(r, c)
			var sumA, sumB, sumW float64
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					if dem.IsNoData(dem.Get(r+dr, c+dc)) {
						continue
					}
					neighbor := normals.Get(r+dr, c+dc)
					cosAngle := cosBetween(center, neighbor)
					if cosAngle <= thresholdCos {
						continue
					}
					w := (cosAngle - thresholdCos) * (cosAngle - thresholdCos)
					sumA += w * float64(neighbor.A)
					sumB += w * float64(neighbor.B)
					sumW += w
				}
			}
			if sumW > 0 {
				out.Set(r, c, grid.Normal{A: float32(sumA / sumW), B: float32(sumB / sumW)})
			} else {
				out.Set(r, c, center)
			}
		}
	}
	return out
}

// reconstructElevations estimates each cell's elevation from its eight
// neighbors' planes (defined by the fixed smoothed normal field and
// each neighbor's current elevation), weighted the same way as the
// normal-field smoothing pass, then optionally clamps the change
// (spec §4.8 step 3).
func reconstructElevations(dem, current *grid.GridStore, smoothed *grid.NormalGrid, opts Options) *grid.GridStore {
	thresholdCos := math.Cos(opts.ThresholdDegrees * math.Pi / 180)
	out := grid.InitializeLike(dem, dem.NoData)

	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			zIn := dem.Get(r, c)
			if dem.IsNoData(zIn) {
				continue
			}
			center := smoothed.Get(r, c)
			var sumZ, sumW float64
			for i := 0; i < 8; i++ {
				nr, nc := r+grid.DY[i], c+grid.DX[i]
				zn := current.Get(nr, nc)
				if dem.IsNoData(zn) {
					continue
				}
				neighbor := smoothed.Get(nr, nc)
				cosAngle := cosBetween(center, neighbor)
				if cosAngle <= thresholdCos {
					continue
				}
				w := (cosAngle - thresholdCos) * (cosAngle - thresholdCos)
				dx := -float64(grid.DX[i]) * dem.ResolutionX
				dy := float64(grid.DY[i]) * dem.ResolutionY
				zHat := float64(neighbor.A)*dx + float64(neighbor.B)*dy + zn
				sumZ += w * zHat
				sumW += w
			}

			zNew := current.Get(r, c)
			if sumW > 0 {
				zNew = sumZ / sumW
			}
			if opts.HasMaxDiff {
				diff := zNew - zIn
				if diff > opts.MaxDiff {
					zNew = zIn + opts.MaxDiff
				} else if diff < -opts.MaxDiff {
					zNew = zIn - opts.MaxDiff
				}
			}
			out.Set(r, c, zNew)
		}
	}
	return out
}

// cosBetween returns the cosine of the angle between two normals whose
// z-component is implicitly 1.
func cosBetween(n1, n2 grid.Normal) float64 {
	a1, b1 := float64(n1.A), float64(n1.B)
	a2, b2 := float64(n2.A), float64(n2.B)
	num := a1*a2 + b1*b2 + 1
	den := math.Sqrt((a1*a1 + b1*b1 + 1) * (a2*a2 + b2*b2 + 1))
	if den == 0 {
		return 1
	}
	cosAngle := num / den
	if cosAngle > 1 {
		return 1
	}
	if cosAngle < -1 {
		return -1
	}
	return cosAngle
}
