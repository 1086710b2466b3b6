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

// Package roughness implements RoughnessEngine (spec §4.7): per-cell
// surface normals from a Horn kernel, Gaussian/fast-almost-Gaussian
// smoothing of the elevation surface, and the angular deviation between
// the original and smoothed normal fields averaged over a window.
package roughness

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
)

// ComputeNormals derives one grid.Normal per non-nodata cell of dem
// using a 3x3 Horn kernel. Missing (nodata) neighbors are replaced by
// the center value, per spec §4.7. The z-component is implicitly 1 and
// is not stored.
func ComputeNormals(dem *grid.GridStore) *grid.NormalGrid {
	rows, cols := dem.Rows, dem.Columns
	out := grid.NewNormalGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				continue
			}
			var n [8]float64
			for i := 0; i < 8; i++ {
				zn := dem.Get(r+grid.DY[i], c+grid.DX[i])
				if dem.IsNoData(zn) {
					zn = z
				}
				n[i] = zn
			}
			a := -((n[0] - n[4]) + 2*(n[7]-n[3]) + (n[6] - n[2])) / (8 * dem.ResolutionX)
			b := -((n[2] - n[4]) + 2*(n[1]-n[5]) + (n[6] - n[0])) / (8 * dem.ResolutionY)
			out.Set(r, c, grid.Normal{A: float32(a), B: float32(b)})
		}
	}
	return out
}

// AngularDeviation returns, in degrees, the angle between two normals
// whose z-component is implicitly 1 (spec §4.7 "Angular deviation").
func AngularDeviation(n1, n2 grid.Normal) float64 {
	a1, b1 := float64(n1.A), float64(n1.B)
	a2, b2 := float64(n2.A), float64(n2.B)
	num := a1*a2 + b1*b2 + 1
	den := math.Sqrt((a1*a1 + b1*b1 + 1) * (a2*a2 + b2*b2 + 1))
	cosAngle := num / den
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	return math.Acos(cosAngle) * 180 / math.Pi
}
