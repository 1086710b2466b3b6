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

package lidar

import "testing"

func TestFilterByScanAngleKeepsWithinThreshold(t *testing.T) {
	pc := NewPointCloud([]Point{
		{X: 0, Y: 0, Z: 0, ScanAngle: 5},
		{X: 1, Y: 0, Z: 0, ScanAngle: -20},
		{X: 2, Y: 0, Z: 0, ScanAngle: 15},
	})
	out := FilterByScanAngle(pc, 15)
	if out.Len() != 2 {
		t.Fatalf("got %d points, want 2", out.Len())
	}
	for _, p := range out.Points {
		a := p.ScanAngle
		if a < 0 {
			a = -a
		}
		if a > 15 {
			t.Errorf("point with scan angle %d survived filter", p.ScanAngle)
		}
	}
}

func TestNewPointCloudLen(t *testing.T) {
	pc := NewPointCloud(make([]Point, 7))
	if pc.Len() != 7 {
		t.Errorf("Len() = %d, want 7", pc.Len())
	}
}
