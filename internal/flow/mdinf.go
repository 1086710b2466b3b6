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

// mdInfWeights computes, for the cell at (row,col), the fraction of its
// flow that should be distributed to each of its eight neighbors under
// the MD-infinity model: the eight triangular facets around the center
// are evaluated for downslope direction and slope (Tarboton 1997,
// Seibert & McGlynn 2007's multiple-flow-direction extension); an
// exponent sharpens or flattens the resulting distribution (spec §4.5
// "For MD∞, the center distributes to all downslope neighbors in
// proportions derived from the eight triangular facets").
//
// When every facet is degenerate (flat or ascending on both edges) the
// function falls back to single steepest-descent, matching the
// reference behavior for cells where no triangular facet carries a
// coherent downslope interior.
func mdInfWeights(dem *grid.GridStore, row, col int, exponent float64) (weights [8]float64, downslope [8]bool) {
	z := dem.Get(row, col)
	gridRes := (dem.ResolutionX + dem.ResolutionY) / 2
	quarterPi := math.Pi / 4
	dd := [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}

	var rFacet, sFacet [8]float64
	for i := range sFacet {
		sFacet[i] = math.NaN() // NaN marks "no facet computed" for this direction
	}

	for i := 0; i < 8; i++ {
		ii := (i + 1) % 8
		p1 := dem.Get(row+grid.DY[i], col+grid.DX[i])
		p2 := dem.Get(row+grid.DY[ii], col+grid.DX[ii])
		p1Valid, p2Valid := !dem.IsNoData(p1), !dem.IsNoData(p2)

		if p1Valid && p1 < z {
			downslope[i] = true
		}

		if p1Valid && p2Valid {
			z1, z2 := p1-z, p2-z
			nx := (float64(grid.DY[i])*z2 - float64(grid.DY[ii])*z1) * gridRes
			ny := (float64(grid.DX[ii])*z1 - float64(grid.DX[i])*z2) * gridRes
			nz := float64(grid.DX[i]*grid.DY[ii]-grid.DX[ii]*grid.DY[i]) * gridRes * gridRes

			var hr float64
			if nx == 0 {
				if ny >= 0 {
					hr = 0
				} else {
					hr = math.Pi
				}
			} else if nx >= 0 {
				hr = math.Pi/2 - math.Atan(ny/nx)
			} else {
				hr = 3*math.Pi/2 - math.Atan(ny/nx)
			}
			hs := -math.Tan(math.Acos(nz / math.Sqrt(nx*nx+ny*ny+nz*nz)))

			if hr < float64(i)*quarterPi || hr > float64(i+1)*quarterPi {
				if p1 < p2 {
					hr = float64(i) * quarterPi
					hs = (z - p1) / (dd[i] * gridRes)
				} else {
					hr = float64(ii) * quarterPi
					hs = (z - p2) / (dd[ii] * gridRes)
				}
			}
			rFacet[i] = hr
			sFacet[i] = hs
		} else if p1Valid && p1 < z {
			rFacet[i] = float64(i) / 4 * math.Pi
			sFacet[i] = (z - p1) / (dd[ii] * gridRes)
		}
	}

	var valley [8]float64
	var valleySum, valleyMax float64
	iMax := 0
	for i := 0; i < 8; i++ {
		ii := (i + 1) % 8
		if !math.IsNaN(sFacet[i]) && sFacet[i] > 0 {
			switch {
			case rFacet[i] > float64(i)*quarterPi && rFacet[i] < float64(i+1)*quarterPi:
				valley[i] = sFacet[i]
			case rFacet[i] == rFacet[ii]:
				valley[i] = sFacet[i]
			case math.IsNaN(sFacet[ii]) && rFacet[i] == float64(i+1)*quarterPi:
				valley[i] = sFacet[i]
			default:
				prev := (i + 7) % 8
				if math.IsNaN(sFacet[prev]) && rFacet[i] == float64(i)*quarterPi {
					valley[i] = sFacet[i]
				}
			}
		}
		if exponent != 1 {
			valley[i] = math.Pow(valley[i], exponent)
		}
		valleySum += valley[i]
		if valley[i] > valleyMax {
			iMax = i
			valleyMax = valley[i]
		}
	}

	if valleySum <= 0 {
		return weights, downslope
	}

	if exponent < 10 {
		for i := range valley {
			valley[i] /= valleySum
		}
	} else {
		for i := range valley {
			if i == iMax {
				valley[i] = 1
			} else {
				valley[i] = 0
			}
		}
	}

	if rFacet[7] == 0 {
		rFacet[7] = 2 * math.Pi
	}
	for i := 0; i < 8; i++ {
		ii := (i + 1) % 8
		if valley[i] > 0 {
			weights[i] += valley[i] * (float64(i+1)*quarterPi - rFacet[i]) / quarterPi
			weights[ii] += valley[i] * (rFacet[i] - float64(i)*quarterPi) / quarterPi
		}
	}
	return weights, downslope
}
