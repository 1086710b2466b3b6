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

package rasterio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/terrakit/wbtcore/internal/grid"
)

func buildTestGrid() *grid.GridStore {
	g := grid.New(4, 5, 40, 36, 15, 10, -9999)
	for r := 0; r < 4; r++ {
		for c := 0; c < 5; c++ {
			g.Set(r, c, float64(r*5+c))
		}
	}
	g.Set(1, 1, g.NoData)
	return g
}

func TestDepRoundTripIsBitIdentical(t *testing.T) {
	g := buildTestGrid()
	path := filepath.Join(t.TempDir(), "test.dep")
	if err := Write(path, g); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rows != g.Rows || got.Columns != g.Columns {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", got.Rows, got.Columns, g.Rows, g.Columns)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			if got.Get(r, c) != g.Get(r, c) {
				t.Errorf("(%d,%d) = %v, want %v", r, c, got.Get(r, c), g.Get(r, c))
			}
		}
	}
}

func TestBILRoundTripWithinFloat32Precision(t *testing.T) {
	g := buildTestGrid()
	path := filepath.Join(t.TempDir(), "test.bil")
	if err := Write(path, g); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			if math.Abs(got.Get(r, c)-g.Get(r, c)) > 1e-5 {
				t.Errorf("(%d,%d) = %v, want %v", r, c, got.Get(r, c), g.Get(r, c))
			}
		}
	}
}

func TestSDATRoundTripIsBitIdentical(t *testing.T) {
	g := buildTestGrid()
	path := filepath.Join(t.TempDir(), "test.sdat")
	if err := Write(path, g); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			if got.Get(r, c) != g.Get(r, c) {
				t.Errorf("(%d,%d) = %v, want %v", r, c, got.Get(r, c), g.Get(r, c))
			}
		}
	}
}

func TestGeoTIFFRoundTripWithinFloat32Precision(t *testing.T) {
	g := buildTestGrid()
	path := filepath.Join(t.TempDir(), "test.tif")
	if err := Write(path, g); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rows != g.Rows || got.Columns != g.Columns {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", got.Rows, got.Columns, g.Rows, g.Columns)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			if math.Abs(got.Get(r, c)-g.Get(r, c)) > 1e-5 {
				t.Errorf("(%d,%d) = %v, want %v", r, c, got.Get(r, c), g.Get(r, c))
			}
		}
	}
}

func TestDetectFormatRejectsUnknownExtension(t *testing.T) {
	if _, err := DetectFormat("foo.xyz"); err == nil {
		t.Fatal("expected error for unrecognized extension")
	}
}
