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

package lidar

import (
	"math"

	"github.com/terrakit/wbtcore/internal/wberr"
	"gonum.org/v1/gonum/floats"
)

// FitPlane fits a plane through pts (at least 3, typically a point's k
// nearest neighbors) by forming the symmetric 3x3 covariance matrix
// after centroid removal, picking the coordinate axis whose 2x2
// cofactor has the largest determinant for numerical conditioning, and
// solving the resulting 2x2 system for the plane direction (spec
// §4.9 step 1). Returns the unit normal.
func FitPlane(pts [][3]float64) ([3]float64, error) {
	n := len(pts)
	if n < 3 {
		return [3]float64{}, wberr.New(wberr.NumericError, "FitPlane", "fewer than 3 points")
	}

	var cx, cy, cz float64
	for _, p := range pts {
		cx += p[0]
		cy += p[1]
		cz += p[2]
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range pts {
		rx, ry, rz := p[0]-cx, p[1]-cy, p[2]-cz
		xx += rx * rx
		xy += rx * ry
		xz += rx * rz
		yy += ry * ry
		yz += ry * rz
		zz += rz * rz
	}

	detX := yy*zz - yz*yz
	detY := xx*zz - xz*xz
	detZ := xx*yy - xy*xy
	detMax := math.Max(detX, math.Max(detY, detZ))
	if detMax == 0 {
		return [3]float64{}, wberr.New(wberr.NumericError, "FitPlane", "degenerate covariance, zero determinant")
	}

	var dir [3]float64
	switch detMax {
	case detX:
		a := (xz*yz - xy*zz) / detX
		b := (xy*yz - xz*yy) / detX
		dir = [3]float64{1, a, b}
	case detY:
		a := (yz*xz - xy*zz) / detY
		b := (xy*xz - yz*xx) / detY
		dir = [3]float64{a, 1, b}
	default:
		a := (yz*xy - xz*yy) / detZ
		b := (xz*xy - yz*xx) / detZ
		dir = [3]float64{a, b, 1}
	}

	norm := floats.Norm(dir[:], 2)
	if norm == 0 {
		return [3]float64{}, wberr.New(wberr.NumericError, "FitPlane", "zero-length normal")
	}
	return [3]float64{dir[0] / norm, dir[1] / norm, dir[2] / norm}, nil
}

// AngleBetween returns the angle in degrees between two unit vectors.
func AngleBetween(a, b [3]float64) float64 {
	dot := floats.Dot(a[:], b[:])
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return math.Acos(dot) * 180 / math.Pi
}
