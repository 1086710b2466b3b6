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

func buildTwoPlaneCloud() *PointCloud {
	var pts []Point
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			pts = append(pts, Point{X: float64(i), Y: float64(j), Z: 0})
		}
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			pts = append(pts, Point{X: 50 + float64(i), Y: 50 + float64(j), Z: 5})
		}
	}
	return NewPointCloud(pts)
}

func defaultSegOptions() Options {
	return Options{K: 8, MaxNormalAngle: 20, MaxZDiff: 2, MinSegmentSize: 10}
}

func TestRunEveryPointGetsSegmentID(t *testing.T) {
	pc := buildTwoPlaneCloud()
	res, err := Run(pc, defaultSegOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range res.SegmentID {
		if id == 0 {
			t.Errorf("point %d unassigned after mop-up", i)
		}
	}
}

func TestRunSeparatesDistantPlanes(t *testing.T) {
	pc := buildTwoPlaneCloud()
	res, err := Run(pc, defaultSegOptions())
	if err != nil {
		t.Fatal(err)
	}
	groundID := res.SegmentID[0]
	roofID := res.SegmentID[len(res.SegmentID)-1]
	if groundID == roofID {
		t.Errorf("ground and roof planes assigned the same segment %d", groundID)
	}
}

func TestClassifyLabelsElevatedClusterOffTerrain(t *testing.T) {
	pc := buildTwoPlaneCloud()
	res, err := Classify(pc, ClassifyOptions{Segmentation: defaultSegOptions(), GroundClass: 2, OffTerrClass: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsGround[0] {
		t.Errorf("ground-plane point classified off-terrain")
	}
	if res.IsGround[len(res.IsGround)-1] {
		t.Errorf("elevated cluster point classified ground")
	}
}

func TestFilterGroundKeepsOnlyGroundPoints(t *testing.T) {
	pc := buildTwoPlaneCloud()
	res, err := Classify(pc, ClassifyOptions{Segmentation: defaultSegOptions(), GroundClass: 2, OffTerrClass: 1})
	if err != nil {
		t.Fatal(err)
	}
	filtered := FilterGround(pc, res)
	for _, p := range filtered.Points {
		if p.Z != 0 {
			t.Errorf("filtered cloud retained non-ground point at z=%v", p.Z)
		}
	}
}

func TestApplyClassificationCodesSetsExpectedValues(t *testing.T) {
	pc := buildTwoPlaneCloud()
	opts := ClassifyOptions{Segmentation: defaultSegOptions(), GroundClass: 2, OffTerrClass: 1}
	res, err := Classify(pc, opts)
	if err != nil {
		t.Fatal(err)
	}
	out := ApplyClassificationCodes(pc, res, opts)
	if out.Points[0].Classification != 2 {
		t.Errorf("ground point classification = %d, want 2", out.Points[0].Classification)
	}
	if out.Points[len(out.Points)-1].Classification != 1 {
		t.Errorf("off-terrain point classification = %d, want 1", out.Points[len(out.Points)-1].Classification)
	}
}
