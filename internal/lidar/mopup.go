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

// mopUp unassigns members of every segment smaller than minSize (plus
// any point whose neighborhood plane fit failed during Run) and
// reabsorbs them into the nearest surviving segment by proximity
// alone, ignoring normal angle (spec §4.9 step 3 and spec §9's
// preserved open question: mop-up deliberately does not check
// normal-angle compatibility, which can attach a point to a
// geometrically dissimilar segment).
func mopUp(pc *PointCloud, segID []uint32, minSize int) {
	counts := make(map[uint32]int)
	for _, id := range segID {
		if id != 0 {
			counts[id]++
		}
	}

	stable := make([]kdtree.Point, 0, len(segID))
	for i, id := range segID {
		if id != 0 && counts[id] >= minSize {
			p := pc.Points[i]
			stable = append(stable, kdtree.Point{Coords: []float64{p.X, p.Y, p.Z}, Index: i})
		}
	}
	if len(stable) == 0 {
		return
	}
	stableTree := kdtree.Build(stable, 3)

	for i, id := range segID {
		if id != 0 && counts[id] >= minSize {
			continue
		}
		p := pc.Points[i]
		idx, _, err := stableTree.KNearest([]float64{p.X, p.Y, p.Z}, 1)
		if err != nil || len(idx) == 0 {
			continue
		}
		segID[i] = segID[idx[0]]
	}
}
