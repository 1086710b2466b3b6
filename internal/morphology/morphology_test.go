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

package morphology

import (
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

func buildSpikeDEM() *grid.GridStore {
	dem := grid.New(9, 9, 9, 0, 9, 0, -9999)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			dem.Set(r, c, 0)
		}
	}
	dem.Set(4, 4, 10)
	return dem
}

func buildPitDEM() *grid.GridStore {
	dem := grid.New(9, 9, 9, 0, 9, 0, -9999)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			dem.Set(r, c, 10)
		}
	}
	dem.Set(4, 4, 0)
	return dem
}

func TestErodeRemovesIsolatedSpike(t *testing.T) {
	dem := buildSpikeDEM()
	out, err := Erode(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 0 {
		t.Errorf("eroded spike center = %v, want 0", out.Get(4, 4))
	}
}

func TestDilateFillsIsolatedPit(t *testing.T) {
	dem := buildPitDEM()
	out, err := Dilate(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 10 {
		t.Errorf("dilated pit center = %v, want 10", out.Get(4, 4))
	}
}

func TestOpenRemovesSmallPeak(t *testing.T) {
	dem := buildSpikeDEM()
	out, err := Open(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 0 {
		t.Errorf("opened spike center = %v, want 0", out.Get(4, 4))
	}
}

func TestCloseFillsSmallPit(t *testing.T) {
	dem := buildPitDEM()
	out, err := Close(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 10 {
		t.Errorf("closed pit center = %v, want 10", out.Get(4, 4))
	}
}

func TestWhiteTopHatIsolatesSmallPeak(t *testing.T) {
	dem := buildSpikeDEM()
	out, err := WhiteTopHat(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 10 {
		t.Errorf("white top-hat center = %v, want 10", out.Get(4, 4))
	}
	if out.Get(0, 0) != 0 {
		t.Errorf("white top-hat flat region = %v, want 0", out.Get(0, 0))
	}
}

func TestBlackTopHatIsolatesSmallPit(t *testing.T) {
	dem := buildPitDEM()
	out, err := BlackTopHat(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Get(4, 4) != 10 {
		t.Errorf("black top-hat center = %v, want 10", out.Get(4, 4))
	}
	if out.Get(0, 0) != 0 {
		t.Errorf("black top-hat flat region = %v, want 0", out.Get(0, 0))
	}
}

func TestSlidingExtremumSkipsNoData(t *testing.T) {
	dem := buildSpikeDEM()
	dem.Set(4, 5, dem.NoData)
	out, err := Dilate(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsNoData(out.Get(4, 5)) {
		t.Errorf("no-data input cell given value %v by dilation", out.Get(4, 5))
	}
	if got := out.Get(3, 5); got != 10 {
		t.Errorf("cell beside the no-data cell = %v, want 10", got)
	}
}

func TestFilterSizeIsForcedOdd(t *testing.T) {
	dem := buildSpikeDEM()
	a, err := Erode(dem, Options{FilterSizeX: 3, FilterSizeY: 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Erode(dem, Options{FilterSizeX: 4, FilterSizeY: 4})
	if err != nil {
		t.Fatal(err)
	}
	if a.Get(4, 4) != b.Get(4, 4) {
		t.Errorf("even filter size not normalized to odd: %v vs %v", a.Get(4, 4), b.Get(4, 4))
	}
}

func TestErodeRejectsNilInput(t *testing.T) {
	if _, err := Erode(nil, Options{FilterSizeX: 3, FilterSizeY: 3}); err == nil {
		t.Fatal("expected error for nil input")
	}
}
