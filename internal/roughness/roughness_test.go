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
	"math"
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

// TestComputeNormalsWorkedExample reproduces the worked example of a
// 3x3 ramp with unit cell resolution: values 1..9 row-major, center
// cell (1,1)=5. The Horn kernel should yield a = 3/resolution,
// b = -0.5/resolution at the center cell.
func TestComputeNormalsWorkedExample(t *testing.T) {
	dem := grid.New(3, 3, 3, 0, 3, 0, -9999)
	vals := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	for r, row := range vals {
		for c, v := range row {
			dem.Set(r, c, v)
		}
	}

	normals := ComputeNormals(dem)
	n := normals.Get(1, 1)

	wantA := 3.0 / dem.ResolutionX
	wantB := -0.5 / dem.ResolutionY
	const tol = 1e-6
	if math.Abs(float64(n.A)-wantA) > tol {
		t.Errorf("a = %v, want %v", n.A, wantA)
	}
	if math.Abs(float64(n.B)-wantB) > tol {
		t.Errorf("b = %v, want %v", n.B, wantB)
	}
}

func TestAngularDeviationZeroForIdenticalNormals(t *testing.T) {
	n := grid.Normal{A: 0.4, B: -0.2}
	if got := AngularDeviation(n, n); got > 1e-9 {
		t.Errorf("angular deviation between identical normals = %v, want 0", got)
	}
}

func TestAngularDeviationFlatVsTiltedIsPositive(t *testing.T) {
	flat := grid.Normal{A: 0, B: 0}
	tilted := grid.Normal{A: 1, B: 0}
	got := AngularDeviation(flat, tilted)
	if got <= 0 || got > 90 {
		t.Errorf("angular deviation = %v, want in (0,90]", got)
	}
}

func buildRampDEM() *grid.GridStore {
	dem := grid.New(16, 16, 16, 0, 16, 0, -9999)
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			dem.Set(r, c, float64(r+c))
		}
	}
	return dem
}

// TestRunSmoothPlaneHasLowRoughness checks that a perfectly planar
// surface (a pure ramp) has near-zero roughness everywhere, since its
// smoothed copy should be identical to the input up to the boundary.
// The checked cells are at least five cells from every edge: three for
// the sigma=1 kernel radius, one for the normal's 3x3 stencil and one
// for the 3x3 averaging window.
func TestRunSmoothPlaneHasLowRoughness(t *testing.T) {
	dem := buildRampDEM()
	out := Run(dem, Options{Sigma: 1, FilterSize: 3})
	for r := 5; r < 11; r++ {
		for c := 5; c < 11; c++ {
			v := out.Get(r, c)
			if v > 1e-6 {
				t.Errorf("(%d,%d) roughness = %v, want ~0 on a plane", r, c, v)
			}
		}
	}
}

func TestRunSkipsNoData(t *testing.T) {
	dem := buildRampDEM()
	dem.Set(5, 5, dem.NoData)
	out := Run(dem, Options{Sigma: 1, FilterSize: 3})
	if got := out.Get(5, 5); !out.IsNoData(got) {
		t.Errorf("nodata input cell produced %v, want nodata", got)
	}
}

func TestSmoothGaussianPreservesPlane(t *testing.T) {
	dem := buildRampDEM()
	out := smoothGaussian(dem, 1)
	if got := out.Get(5, 5); math.Abs(got-dem.Get(5, 5)) > 1e-6 {
		t.Errorf("smoothed plane cell = %v, want %v", got, dem.Get(5, 5))
	}
}

func TestSmoothFastAlmostGaussianPreservesPlane(t *testing.T) {
	dem := buildRampDEM()
	out := smoothFastAlmostGaussian(dem, 2)
	// For sigma=2 the four box passes have radii 2, 2, 2 and 1, so a
	// cell seven or more cells from every edge sees no boundary effect.
	if got := out.Get(8, 8); math.Abs(got-dem.Get(8, 8)) > 1e-6 {
		t.Errorf("smoothed plane cell = %v, want %v", got, dem.Get(8, 8))
	}
}
