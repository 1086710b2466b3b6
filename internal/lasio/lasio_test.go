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

package lasio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/terrakit/wbtcore/internal/lidar"
)

func buildTestCloud() *lidar.PointCloud {
	pts := []lidar.Point{
		{X: 100.123, Y: 200.456, Z: 50.789, Intensity: 120, ReturnNumber: 1, NumReturns: 2, Classification: 2, ScanAngle: -5, GPSTime: 12345.6789, HasGPSTime: true, R: 10, G: 20, B: 30, HasColor: true},
		{X: 101.0, Y: 201.0, Z: 51.0, Intensity: 80, ReturnNumber: 2, NumReturns: 2, Classification: 1, ScanAngle: 5, GPSTime: 12345.6800, HasGPSTime: true, R: 40, G: 50, B: 60, HasColor: true},
	}
	return lidar.NewPointCloud(pts)
}

func TestWriteReadRoundTripWithinScalePrecision(t *testing.T) {
	pc := buildTestCloud()
	h := &Header{
		VersionMajor: 1, VersionMinor: 2,
		PointFormat: 3,
		XScale:      0.001, YScale: 0.001, ZScale: 0.001,
	}
	path := filepath.Join(t.TempDir(), "test.las")
	if err := Write(path, pc, h); err != nil {
		t.Fatal(err)
	}
	got, gotHeader, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != pc.Len() {
		t.Fatalf("got %d points, want %d", got.Len(), pc.Len())
	}
	for i, p := range pc.Points {
		q := got.Points[i]
		if math.Abs(p.X-q.X) > 1e-3 || math.Abs(p.Y-q.Y) > 1e-3 || math.Abs(p.Z-q.Z) > 1e-3 {
			t.Errorf("point %d coords = (%v,%v,%v), want (%v,%v,%v)", i, q.X, q.Y, q.Z, p.X, p.Y, p.Z)
		}
		if q.Classification != p.Classification || q.ReturnNumber != p.ReturnNumber || q.NumReturns != p.NumReturns {
			t.Errorf("point %d attributes mismatch: %+v vs %+v", i, q, p)
		}
		if !q.HasColor || q.R != p.R || q.G != p.G || q.B != p.B {
			t.Errorf("point %d color mismatch: %+v vs %+v", i, q, p)
		}
	}
	if gotHeader.PointFormat != 3 {
		t.Errorf("point format = %d, want 3", gotHeader.PointFormat)
	}
}

func TestReadRejectsMissingSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.las")
	if err := os.WriteFile(path, make([]byte, 300), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(path); err == nil {
		t.Fatal("expected error for missing LASF signature")
	}
}

func TestWritePreservesVLRsAndSystemIdentity(t *testing.T) {
	pc := buildTestCloud()
	h := &Header{
		VersionMajor: 1, VersionMinor: 2,
		PointFormat: 1,
		XScale:      0.01, YScale: 0.01, ZScale: 0.01,
		FileCreationDay: 45, FileCreationYear: 2023,
		VLRs:    []byte("a custom VLR payload"),
		NumVLRs: 1,
	}
	copy(h.SystemIdentifier[:], "TESTSRC")
	path := filepath.Join(t.TempDir(), "vlr.las")
	if err := Write(path, pc, h); err != nil {
		t.Fatal(err)
	}
	_, gotHeader, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(gotHeader.VLRs) != string(h.VLRs) {
		t.Errorf("VLRs = %q, want %q", gotHeader.VLRs, h.VLRs)
	}
	if gotHeader.FileCreationDay != 45 || gotHeader.FileCreationYear != 2023 {
		t.Errorf("creation date = %d/%d, want 45/2023", gotHeader.FileCreationDay, gotHeader.FileCreationYear)
	}
}

