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

import "github.com/terrakit/wbtcore/internal/kdtree"

// classify labels each segment ground (true) or off-terrain (false)
// using the prominence test (spec §4.9 step 4): for every point, find
// its lowest-elevation neighbor in a different segment using a 2-D
// spatial index, and credit the positive elevation difference to BOTH
// segments at once -- the current point's segment as sum_higher, and
// the neighbor's segment as sum_lower -- exactly as
// lidar_segmentation_based_filter.rs's num_lower/num_higher update
// does. A segment is off-terrain if it is net higher than its
// neighbors, or if its mean normal's dominant component is not z.
// numNeighbors is the same neighborhood size used for plane fitting
// (spec §4.9 step 1's caller-configured point count).
func classify(pc *PointCloud, segID []uint32, stats []segmentStats, numNeighbors int) []bool {
	n := pc.Len()
	numSegments := len(stats)
	ground := make([]bool, numSegments)
	if numSegments == 0 {
		return ground
	}

	pts2 := make([]kdtree.Point, n)
	for i, p := range pc.Points {
		pts2[i] = kdtree.Point{Coords: []float64{p.X, p.Y}, Index: i}
	}
	tree := kdtree.Build(pts2, 2)

	sumLower := make([]float64, numSegments)
	sumHigher := make([]float64, numSegments)

	for i, p := range pc.Points {
		id := segID[i]
		if id == 0 {
			continue
		}
		idx, dist, err := tree.KNearest([]float64{p.X, p.Y}, numNeighbors)
		if err != nil {
			continue
		}
		bestJ := -1
		bestZ := 0.0
		for k, ni := range idx {
			if segID[ni] == id || segID[ni] == 0 {
				continue
			}
			z := pc.Points[ni].Z
			if bestJ == -1 || z < bestZ {
				bestJ = ni
				bestZ = z
			}
			_ = dist[k]
		}
		if bestJ == -1 {
			continue
		}
		diff := p.Z - bestZ
		if diff > 0 {
			sumHigher[id-1] += diff
			sumLower[segID[bestJ]-1] += diff
		}
	}

	for s := 0; s < numSegments; s++ {
		dominantZ := dominantComponentIsZ(stats[s].mean)
		ground[s] = sumHigher[s] <= sumLower[s] && dominantZ
	}
	return ground
}

func dominantComponentIsZ(n [3]float64) bool {
	az, ax, ay := n[2], n[0], n[1]
	if az < 0 {
		az = -az
	}
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	return az >= ax && az >= ay
}
