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

// ClassifyOptions configures the full ground/off-terrain classification
// pipeline (spec §4.9 steps 1-5).
type ClassifyOptions struct {
	Segmentation Options
	GroundClass  uint8
	OffTerrClass uint8
}

// ClassifyResult carries the per-point ground/off-terrain labels
// alongside the underlying segmentation, so a caller can choose either
// output mode without re-running the pipeline.
type ClassifyResult struct {
	SegmentID []uint32
	IsGround  []bool
}

// Classify runs the full LidarSegmentation pipeline: plane fitting,
// sorted seeding and region growing, small-segment mop-up, and
// prominence-based ground/off-terrain labeling.
func Classify(pc *PointCloud, opts ClassifyOptions) (*ClassifyResult, error) {
	seg, err := Run(pc, opts.Segmentation)
	if err != nil {
		return nil, err
	}
	groundBySegment := classify(pc, seg.SegmentID, seg.Stats, opts.Segmentation.K)

	isGround := make([]bool, pc.Len())
	for i, id := range seg.SegmentID {
		if id == 0 {
			continue
		}
		isGround[i] = groundBySegment[id-1]
	}
	return &ClassifyResult{SegmentID: seg.SegmentID, IsGround: isGround}, nil
}

// FilterGround returns a new PointCloud containing only the
// ground-labeled points (spec §4.9 step 5, output mode i).
func FilterGround(pc *PointCloud, res *ClassifyResult) *PointCloud {
	out := make([]Point, 0, pc.Len())
	for i, p := range pc.Points {
		if res.IsGround[i] {
			out = append(out, p)
		}
	}
	return NewPointCloud(out)
}

// ApplyClassificationCodes returns a copy of pc with every point's
// Classification field set to opts.GroundClass or opts.OffTerrClass
// according to res (spec §4.9 step 5, output mode ii).
func ApplyClassificationCodes(pc *PointCloud, res *ClassifyResult, opts ClassifyOptions) *PointCloud {
	out := make([]Point, len(pc.Points))
	copy(out, pc.Points)
	for i := range out {
		if res.IsGround[i] {
			out[i].Classification = opts.GroundClass
		} else {
			out[i].Classification = opts.OffTerrClass
		}
	}
	return NewPointCloud(out)
}
