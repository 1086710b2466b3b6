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

package pflood

import (
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

func TestNoDataStaysNoData(t *testing.T) {
	g := grid.New(5, 5, 5, 0, 5, 0, -9999)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			g.Set(r, c, float64(r+c))
		}
	}
	g.Set(2, 2, -9999)

	res := Run(g)
	if !res.Output.IsNoData(res.Output.Get(2, 2)) {
		t.Fatalf("nodata input cell resolved to %v, want nodata", res.Output.Get(2, 2))
	}
}

func TestFlatSurfaceStaysFlat(t *testing.T) {
	g := grid.New(6, 6, 6, 0, 6, 0, -9999)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			g.Set(r, c, 10)
		}
	}
	res := Run(g)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			if got := res.Output.Get(r, c); got != 10 {
				t.Fatalf("(%d,%d) = %v, want 10", r, c, got)
			}
		}
	}
}

func TestOutputNeverBelowInput(t *testing.T) {
	g := grid.New(8, 8, 8, 0, 8, 0, -9999)
	vals := [][]float64{
		{9, 9, 9, 9, 9, 9, 9, 9},
		{9, 5, 5, 5, 5, 5, 5, 9},
		{9, 5, 1, 1, 1, 1, 5, 9},
		{9, 5, 1, 3, 0, 1, 5, 9},
		{9, 5, 1, 1, 1, 1, 5, 9},
		{9, 5, 5, 5, 5, 5, 5, 9},
		{9, 9, 9, 9, 9, 9, 9, 9},
		{9, 9, 9, 9, 9, 9, 9, 9},
	}
	for r, row := range vals {
		for c, v := range row {
			g.Set(r, c, v)
		}
	}
	res := Run(g)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			in := g.Get(r, c)
			out := res.Output.Get(r, c)
			if out < in {
				t.Fatalf("(%d,%d) output %v < input %v", r, c, out, in)
			}
		}
	}
	// The depression at (3,4), true elevation 0, must be raised to its
	// pour point, not merely to its neighbors. Its 5-rim is itself
	// enclosed by the 9-valued raster frame, so the pour point is 9.
	if got := res.Output.Get(3, 4); got != 9 {
		t.Errorf("pit fill = %v, want 9", got)
	}
}

// A nodata donut surrounding a pocket of valid cells: the pocket must
// still be filled (to the lowest elevation on the donut's inner rim),
// and the donut itself must remain nodata.
func TestNoDataDonutFillsInnerPocket(t *testing.T) {
	n := 9
	g := grid.New(n, n, float64(n), 0, float64(n), 0, -9999)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			g.Set(r, c, 20)
		}
	}
	// Ring at Chebyshev distance 3 from center (4,4) is the nodata donut.
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			d := abs(r-4)
			if abs(c-4) > d {
				d = abs(c - 4)
			}
			if d == 3 {
				g.Set(r, c, -9999)
			}
		}
	}
	// Inside the donut (Chebyshev distance < 3 from center), a pit.
	g.Set(4, 4, 1)
	// Rim just inside the donut: varying elevations, lowest is 7.
	g.Set(3, 3, 9)
	g.Set(3, 4, 7)
	g.Set(3, 5, 9)

	res := Run(g)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			d := abs(r-4)
			if abs(c-4) > d {
				d = abs(c - 4)
			}
			if d == 3 && !res.Output.IsNoData(res.Output.Get(r, c)) {
				t.Fatalf("donut cell (%d,%d) = %v, want nodata", r, c, res.Output.Get(r, c))
			}
		}
	}
	if got := res.Output.Get(4, 4); got != 20 {
		t.Errorf("inner pocket pit fill = %v, want 20 (lowest inner rim)", got)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
