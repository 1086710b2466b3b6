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

package grid

import "testing"

func TestOutOfBoundsReadsNoData(t *testing.T) {
	g := New(5, 5, 50, 0, 50, 0, -9999)
	if v := g.Get(-1, 0); v != -9999 {
		t.Errorf("Get(-1,0) = %v, want nodata", v)
	}
	if v := g.Get(5, 5); v != -9999 {
		t.Errorf("Get(5,5) = %v, want nodata", v)
	}
}

func TestOutOfBoundsWriteIgnored(t *testing.T) {
	g := New(5, 5, 50, 0, 50, 0, -9999)
	g.Set(-1, -1, 123)
	g.Set(100, 100, 123)
	// no panic, and in-bounds cells are unaffected
	if v := g.Get(0, 0); v != -9999 {
		t.Errorf("in-bounds cell corrupted by out-of-bounds write: %v", v)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	g := New(10, 10, 100, 0, 100, 0, -9999)
	for row := 0; row < 10; row++ {
		y := g.YFromRow(row)
		if back := g.RowFromY(y); back != row {
			t.Errorf("row %d -> y %g -> row %d", row, y, back)
		}
	}
	for col := 0; col < 10; col++ {
		x := g.XFromCol(col)
		if back := g.ColFromX(x); back != col {
			t.Errorf("col %d -> x %g -> col %d", col, x, back)
		}
	}
}

func TestSameShape(t *testing.T) {
	a := New(5, 5, 50, 0, 50, 0, -9999)
	b := New(5, 5, 50, 0, 50, 0, -9999)
	if err := SameShape(a, b); err != nil {
		t.Errorf("expected matching shapes, got %v", err)
	}
	c := New(4, 5, 50, 0, 50, 0, -9999)
	if err := SameShape(a, c); err == nil {
		t.Errorf("expected dimension mismatch error")
	}
}

func TestBackLink(t *testing.T) {
	for i := 0; i < 8; i++ {
		if got := BackLink(BackLink(i)); got != i {
			t.Errorf("BackLink(BackLink(%d)) = %d, want %d", i, got, i)
		}
	}
}
