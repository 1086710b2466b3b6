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

package vectorio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestPointRoundTrip(t *testing.T) {
	features := []Feature{
		{Type: GeometryPoint, Point: [2]float64{10.5, 20.25}, Attributes: map[string]string{"ELEV": "123.4"}},
		{Type: GeometryPoint, Point: [2]float64{-5, 7}, Attributes: map[string]string{"ELEV": "0.1"}},
	}
	fields := []FieldSpec{{Name: "ELEV", Length: 12, Precision: 4, IsFloat: true}}
	path := filepath.Join(t.TempDir(), "points")

	if err := Write(path, GeometryPoint, fields, features); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(features) {
		t.Fatalf("got %d features, want %d", len(got), len(features))
	}
	for i, f := range features {
		if math.Abs(got[i].Point[0]-f.Point[0]) > 1e-6 || math.Abs(got[i].Point[1]-f.Point[1]) > 1e-6 {
			t.Errorf("feature %d point = %v, want %v", i, got[i].Point, f.Point)
		}
	}
}

func TestPolyLineRoundTrip(t *testing.T) {
	features := []Feature{
		{
			Type: GeometryPolyLine,
			Parts: [][][2]float64{
				{{0, 0}, {1, 1}, {2, 0}},
				{{10, 10}, {11, 11}},
			},
			Attributes: map[string]string{"NAME": "reach1"},
		},
	}
	fields := []FieldSpec{{Name: "NAME", Length: 20}}
	path := filepath.Join(t.TempDir(), "lines")

	if err := Write(path, GeometryPolyLine, fields, features); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d features, want 1", len(got))
	}
	if len(got[0].Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(got[0].Parts))
	}
	if len(got[0].Parts[0]) != 3 || len(got[0].Parts[1]) != 2 {
		t.Errorf("part lengths = %d,%d, want 3,2", len(got[0].Parts[0]), len(got[0].Parts[1]))
	}
}
