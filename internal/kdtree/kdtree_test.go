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

package kdtree

import (
	"math"
	"testing"
)

func gridPoints() []Point {
	var pts []Point
	idx := 0
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			pts = append(pts, Point{Coords: []float64{float64(x), float64(y)}, Index: idx})
			idx++
		}
	}
	return pts
}

func TestKNearestFindsSelf(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts, 2)
	idxs, dists, err := tree.KNearest([]float64{2, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(idxs) != 1 || dists[0] != 0 {
		t.Fatalf("expected exact match at distance 0, got idxs=%v dists=%v", idxs, dists)
	}
}

func TestKNearestAscendingOrder(t *testing.T) {
	tree := Build(gridPoints(), 2)
	_, dists, err := tree.KNearest([]float64{0, 0}, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[i-1] {
			t.Fatalf("distances not ascending: %v", dists)
		}
	}
}

func TestKNearestDegenerateExceedsCount(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts, 2)
	idxs, _, err := tree.KNearest([]float64{0, 0}, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if len(idxs) != len(pts) {
		t.Fatalf("expected all %d points, got %d", len(pts), len(idxs))
	}
}

func TestWithinRadius(t *testing.T) {
	tree := Build(gridPoints(), 2)
	got := tree.WithinRadius([]float64{2, 2}, 1.0)
	// Center plus 4 cardinal neighbors at distance 1.
	if len(got) != 5 {
		t.Fatalf("expected 5 points within radius 1 of center, got %d", len(got))
	}
}

func TestEmptyIndexErrors(t *testing.T) {
	tree := Build(nil, 2)
	if _, _, err := tree.KNearest([]float64{0, 0}, 1); err == nil {
		t.Fatal("expected error querying empty index")
	}
}

func TestKNearest3D(t *testing.T) {
	pts := []Point{
		{Coords: []float64{0, 0, 0}, Index: 0},
		{Coords: []float64{1, 1, 1}, Index: 1},
		{Coords: []float64{5, 5, 5}, Index: 2},
	}
	tree := Build(pts, 3)
	idxs, dists, err := tree.KNearest([]float64{0.1, 0.1, 0.1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if idxs[0] != 0 {
		t.Fatalf("expected nearest index 0, got %d", idxs[0])
	}
	if math.Abs(dists[0]-0.03) > 1e-9 {
		t.Fatalf("unexpected squared distance %v", dists[0])
	}
}
