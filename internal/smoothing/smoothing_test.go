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

package smoothing

import (
	"math"
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

func buildRampDEM() *grid.GridStore {
	dem := grid.New(24, 24, 24, 0, 24, 0, -9999)
	for r := 0; r < 24; r++ {
		for c := 0; c < 24; c++ {
			dem.Set(r, c, float64(r+c))
		}
	}
	return dem
}

// A perfectly planar surface should reproduce itself under
// feature-preserving smoothing, since every neighbor's plane agrees
// exactly with the center's, far enough from the border that no
// window touches an edge-affected normal.
func TestRunPreservesPlane(t *testing.T) {
	dem := buildRampDEM()
	out := Run(dem, DefaultOptions())
	for r := 9; r < 15; r++ {
		for c := 9; c < 15; c++ {
			want := dem.Get(r, c)
			got := out.Get(r, c)
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("(%d,%d) = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestRunSkipsNoData(t *testing.T) {
	dem := buildRampDEM()
	dem.Set(6, 6, dem.NoData)
	out := Run(dem, DefaultOptions())
	if got := out.Get(6, 6); !out.IsNoData(got) {
		t.Errorf("nodata input cell produced %v, want nodata", got)
	}
}

func TestRunRespectsMaxDiff(t *testing.T) {
	dem := grid.New(5, 5, 5, 0, 5, 0, -9999)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			dem.Set(r, c, 0)
		}
	}
	dem.Set(2, 2, 100) // sharp spike
	opts := DefaultOptions()
	opts.HasMaxDiff = true
	opts.MaxDiff = 1
	out := Run(dem, opts)
	if got := out.Get(2, 2); math.Abs(got-100) > 1+1e-9 {
		t.Errorf("spike moved by %v, want <= 1", math.Abs(got-100))
	}
}

func TestCosBetweenIdenticalNormalsIsOne(t *testing.T) {
	n := grid.Normal{A: 0.3, B: -0.1}
	if got := cosBetween(n, n); math.Abs(got-1) > 1e-9 {
		t.Errorf("cosBetween(n, n) = %v, want 1", got)
	}
}

func TestSmoothNormalFieldAveragesFlatPlane(t *testing.T) {
	dem := buildRampDEM()
	n := grid.NewNormalGrid(dem.Rows, dem.Columns)
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			n.Set(r, c, grid.Normal{A: 1, B: 1})
		}
	}
	out := smoothNormalField(dem, n, 11, 15)
	got := out.Get(6, 6)
	if math.Abs(float64(got.A)-1) > 1e-6 || math.Abs(float64(got.B)-1) > 1e-6 {
		t.Errorf("uniform normal field smoothed to %v, want (1,1)", got)
	}
}
