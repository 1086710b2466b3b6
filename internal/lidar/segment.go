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

import (
	"sort"

	"github.com/terrakit/wbtcore/internal/kdtree"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// Options configures a LidarSegmentation run.
type Options struct {
	K              int     // neighbors used for plane fitting
	MaxNormalAngle float64 // degrees; region-growing admission threshold
	MaxZDiff       float64 // map units; region-growing admission threshold
	MinSegmentSize int     // segments smaller than this are mopped up (default 10)
}

// segmentStats accumulates a Welford-style running mean/variance of a
// segment's member normals (spec §4.9 step 2's "maintain Welford-style
// mean/variance of normals per segment").
type segmentStats struct {
	count int
	mean  [3]float64
	m2    [3]float64
}

func (s *segmentStats) add(n [3]float64) {
	s.count++
	for i := 0; i < 3; i++ {
		delta := n[i] - s.mean[i]
		s.mean[i] += delta / float64(s.count)
		delta2 := n[i] - s.mean[i]
		s.m2[i] += delta * delta2
	}
}

// Result holds the per-point segment assignment and the per-segment
// running normal statistics, indexed by segment id - 1 (segment ids
// start at 1; 0 is the unassigned sentinel, spec §3 invariant).
type Result struct {
	SegmentID []uint32
	Stats     []segmentStats
}

// Run segments pc into planar regions (spec §4.9 steps 1-3): a plane
// normal is fit to every point's k nearest neighbors, points are
// visited in descending-z order, and each seed grows a segment via a
// LIFO stack admitting neighbors within MaxNormalAngle and MaxZDiff of
// the point that discovered them. Members of segments under
// MinSegmentSize are then mopped up by proximity alone: each joins the
// segment of its nearest point among the segments that reach
// MinSegmentSize. This is a single nearest-point pass, not a second
// region-grow.
func Run(pc *PointCloud, opts Options) (*Result, error) {
	n := pc.Len()
	if n == 0 {
		return &Result{}, wberr.New(wberr.InvalidParam, "LidarSegmentation", "empty point cloud")
	}
	if opts.MinSegmentSize <= 0 {
		opts.MinSegmentSize = 10
	}

	pts3 := make([]kdtree.Point, n)
	for i, p := range pc.Points {
		pts3[i] = kdtree.Point{Coords: []float64{p.X, p.Y, p.Z}, Index: i}
	}
	tree := kdtree.Build(pts3, 3)

	normals := make([][3]float64, n)
	validNormal := make([]bool, n)
	for i, p := range pc.Points {
		idx, _, err := tree.KNearest([]float64{p.X, p.Y, p.Z}, opts.K)
		if err != nil {
			continue
		}
		neighborhood := make([][3]float64, len(idx))
		for j, ni := range idx {
			neighborhood[j] = [3]float64{pc.Points[ni].X, pc.Points[ni].Y, pc.Points[ni].Z}
		}
		normal, err := FitPlane(neighborhood)
		if err != nil {
			continue
		}
		normals[i] = normal
		validNormal[i] = true
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pc.Points[order[i]].Z > pc.Points[order[j]].Z })

	segID := make([]uint32, n)
	var stats []segmentStats
	var nextID uint32 = 1

	for _, seed := range order {
		if segID[seed] != 0 || !validNormal[seed] {
			continue
		}
		id := nextID
		nextID++
		stats = append(stats, segmentStats{})
		s := &stats[id-1]

		stack := []int{seed}
		segID[seed] = id
		s.add(normals[seed])

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			p := pc.Points[cur]
			idx, _, err := tree.KNearest([]float64{p.X, p.Y, p.Z}, opts.K)
			if err != nil {
				continue
			}
			for _, ni := range idx {
				if ni == cur || segID[ni] != 0 || !validNormal[ni] {
					continue
				}
				if AngleBetween(normals[cur], normals[ni]) >= opts.MaxNormalAngle {
					continue
				}
				dz := pc.Points[ni].Z - p.Z
				if dz < 0 {
					dz = -dz
				}
				if dz > opts.MaxZDiff {
					continue
				}
				segID[ni] = id
				s.add(normals[ni])
				stack = append(stack, ni)
			}
		}
	}

	// Points whose neighborhood plane fit failed (degenerate covariance)
	// remain unassigned here; the mop-up pass absorbs them by proximity
	// alone, same as undersized segments.
	mopUp(pc, segID, opts.MinSegmentSize)

	return &Result{SegmentID: segID, Stats: stats}, nil
}
