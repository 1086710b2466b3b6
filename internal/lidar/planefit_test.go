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
	"testing"

	"gonum.org/v1/gonum/floats"
)

// TestFitPlaneCoplanarPoints reproduces spec §8 scenario 4: a cloud of
// co-planar points z = a*x + b*y + c must fit a normal parallel to
// (-a, -b, 1) to within 1e-6.
func TestFitPlaneCoplanarPoints(t *testing.T) {
	const a, b, c = 0.4, -0.7, 3.0
	var pts [][3]float64
	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			x := float64(i) * 0.5
			y := float64(j) * 0.5
			z := a*x + b*y + c
			pts = append(pts, [3]float64{x, y, z})
		}
	}

	normal, err := FitPlane(pts)
	if err != nil {
		t.Fatal(err)
	}

	expected := [3]float64{-a, -b, 1}
	norm := floats.Norm(expected[:], 2)
	for i := range expected {
		expected[i] /= norm
	}

	dot := floats.Dot(normal[:], expected[:])
	if math.Abs(math.Abs(dot)-1) > 1e-6 {
		t.Errorf("fitted normal %v not parallel to %v (|dot|=%v)", normal, expected, dot)
	}
}

func TestFitPlaneTooFewPoints(t *testing.T) {
	_, err := FitPlane([][3]float64{{0, 0, 0}, {1, 0, 0}})
	if err == nil {
		t.Fatal("expected error for fewer than 3 points")
	}
}

func TestAngleBetweenIdenticalIsZero(t *testing.T) {
	n := [3]float64{0, 0, 1}
	if got := AngleBetween(n, n); got > 1e-9 {
		t.Errorf("AngleBetween(n, n) = %v, want 0", got)
	}
}

func TestAngleBetweenOrthogonalIs90(t *testing.T) {
	n1 := [3]float64{1, 0, 0}
	n2 := [3]float64{0, 1, 0}
	got := AngleBetween(n1, n2)
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("AngleBetween orthogonal = %v, want 90", got)
	}
}
