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

package sat

import (
	"math"
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

func TestMeanMatchesDirectComputation(t *testing.T) {
	g := grid.New(10, 10, 10, 0, 10, 0, -9999)
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if (r+c)%7 == 0 {
				continue // leave as nodata
			}
			g.Set(r, c, float64(r*10+c))
		}
	}
	table := Build(g)

	r0, c0, r1, c1 := 2, 3, 7, 8
	var sum, n float64
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			v := g.Get(r, c)
			if g.IsNoData(v) {
				continue
			}
			sum += v
			n++
		}
	}
	want := sum / n
	got := table.Mean(r0, c0, r1, c1, -9999)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Mean = %v, want %v", got, want)
	}
}

func TestEmptyRectangleReturnsNoData(t *testing.T) {
	g := grid.New(5, 5, 5, 0, 5, 0, -9999)
	// entire grid nodata
	table := Build(g)
	got := table.Mean(0, 0, 5, 5, -9999)
	if got != -9999 {
		t.Errorf("Mean over all-nodata rectangle = %v, want nodata", got)
	}
}

func TestRectangleClampedToGrid(t *testing.T) {
	g := grid.New(3, 3, 3, 0, 3, 0, -9999)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g.Set(r, c, 1)
		}
	}
	table := Build(g)
	// request a rectangle that spills far out of bounds
	got := table.Count(-100, -100, 100, 100)
	if got != 9 {
		t.Errorf("Count over clamped rectangle = %v, want 9", got)
	}
}
