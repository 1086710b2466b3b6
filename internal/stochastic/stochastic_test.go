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

package stochastic

import (
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/pflood"
)

func buildPitDEM() *grid.GridStore {
	dem := grid.New(5, 5, 5, 0, 5, 0, -9999)
	vals := [][]float64{
		{10, 10, 10, 10, 10},
		{10, 10, 10, 10, 10},
		{10, 10, 0, 10, 10},
		{10, 10, 10, 10, 10},
		{10, 10, 10, 10, 10},
	}
	for r, row := range vals {
		for c, v := range row {
			dem.Set(r, c, v)
		}
	}
	return dem
}

// TestRunZeroRMSEMatchesDepressionIndicator reproduces spec §8 scenario
// 6: with RMSE = 0 the returned probability grid is identical to the
// indicator of cells that lie below their filled elevation in the
// unperturbed input.
func TestRunZeroRMSEMatchesDepressionIndicator(t *testing.T) {
	dem := buildPitDEM()
	out, err := Run(dem, Options{Iterations: 5, RMSE: 0, Range: 1})
	if err != nil {
		t.Fatal(err)
	}

	filled := pflood.Run(dem).Output
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			want := 0.0
			if filled.Get(r, c) > dem.Get(r, c) {
				want = 1.0
			}
			if got := out.Get(r, c); got != want {
				t.Errorf("(%d,%d) probability = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestRunRejectsNonPositiveIterations(t *testing.T) {
	dem := buildPitDEM()
	if _, err := Run(dem, Options{Iterations: 0, RMSE: 1, Range: 1}); err == nil {
		t.Fatal("expected error for zero iterations")
	}
}

func TestRunProbabilitiesWithinZeroOne(t *testing.T) {
	dem := buildPitDEM()
	out, err := Run(dem, Options{Iterations: 20, RMSE: 0.5, Range: 2})
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			v := out.Get(r, c)
			if v < 0 || v > 1 {
				t.Errorf("(%d,%d) probability = %v, want in [0,1]", r, c, v)
			}
		}
	}
}

func TestBuildReferenceTableInvertIsMonotonic(t *testing.T) {
	ref := buildReferenceTable(1.0)
	prev := ref.invert(0.01)
	for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.99} {
		x := ref.invert(p)
		if x < prev {
			t.Errorf("invert(%v) = %v, not >= previous %v", p, x, prev)
		}
		prev = x
	}
}
