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

// Package kdtree implements SpatialIndex (spec §4.2): an approximate-
// balanced k-d tree over 2-D or 3-D points supporting k-nearest and
// within-radius queries under squared-Euclidean distance.
//
// This is one of the five "hard part" algorithmic engines named in
// spec §1 (k-nearest-neighbor spatial search over point clouds), so it
// is hand-written rather than delegated to a library: no k-NN-capable
// k-d tree appears anywhere in the example corpus (the nearest relative,
// github.com/ctessum/geom/index/rtree, only supports bounding-box
// intersection, not fixed-k nearest-neighbor search).
package kdtree

import (
	"fmt"
	"sort"
)

// Point is a 2-D or 3-D point together with the index of the original
// point it represents. Index is the only identifier ever passed between
// stages (spec §9 "Arena + index for LiDAR").
type Point struct {
	Coords []float64
	Index  int
}

type node struct {
	point       Point
	axis        int
	left, right *node
}

// Tree is a k-d tree over a fixed set of points, built once and then
// queried concurrently without mutation (spec §5).
type Tree struct {
	root *node
	dims int
	n    int
}

// Build constructs a balanced k-d tree over pts. dims must be 2 or 3
// and match len(pts[i].Coords) for every point.
func Build(pts []Point, dims int) *Tree {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	t := &Tree{dims: dims, n: len(cp)}
	t.root = build(cp, 0, dims)
	return t
}

func build(pts []Point, depth, dims int) *node {
	if len(pts) == 0 {
		return nil
	}
	axis := depth % dims
	sort.Slice(pts, func(i, j int) bool { return pts[i].Coords[axis] < pts[j].Coords[axis] })
	mid := len(pts) / 2
	n := &node{point: pts[mid], axis: axis}
	n.left = build(pts[:mid], depth+1, dims)
	n.right = build(pts[mid+1:], depth+1, dims)
	return n
}

// Len returns the number of points held by the tree.
func (t *Tree) Len() int { return t.n }

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// neighborHeap is a bounded max-heap (by distance) of the k closest
// points found so far, so the farthest candidate can be evicted in
// O(log k) as better candidates are discovered.
type neighborHeap struct {
	idx  []int
	dist []float64
}

func (h *neighborHeap) Len() int            { return len(h.dist) }
func (h *neighborHeap) Less(i, j int) bool  { return h.dist[i] > h.dist[j] } // max-heap
func (h *neighborHeap) Swap(i, j int) {
	h.dist[i], h.dist[j] = h.dist[j], h.dist[i]
	h.idx[i], h.idx[j] = h.idx[j], h.idx[i]
}
func (h *neighborHeap) Push(d float64, index int) {
	h.dist = append(h.dist, d)
	h.idx = append(h.idx, index)
	i := len(h.dist) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.Less(i, parent) {
			break
		}
		h.Swap(i, parent)
		i = parent
	}
}
func (h *neighborHeap) ReplaceTop(d float64, index int) {
	h.dist[0] = d
	h.idx[0] = index
	i := 0
	for {
		l, r := 2*i+1, 2*i+2
		largest := i
		if l < len(h.dist) && h.Less(l, largest) {
			largest = l
		}
		if r < len(h.dist) && h.Less(r, largest) {
			largest = r
		}
		if largest == i {
			break
		}
		h.Swap(i, largest)
		i = largest
	}
}

// KNearest returns the indices and squared distances of the k points
// nearest to query, sorted ascending by distance. If k exceeds the
// number of points inserted, every inserted point is returned (spec
// §4.2's "degenerate case").
func (t *Tree) KNearest(query []float64, k int) ([]int, []float64, error) {
	if t.n == 0 {
		return nil, nil, fmt.Errorf("kdtree: KNearest on empty index")
	}
	if k > t.n {
		k = t.n
	}
	if k <= 0 {
		return nil, nil, nil
	}
	h := &neighborHeap{}
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil {
			return
		}
		d := sqDist(query, n.point.Coords)
		if h.Len() < k {
			h.Push(d, n.point.Index)
		} else if d < h.dist[0] {
			h.ReplaceTop(d, n.point.Index)
		}
		diff := query[n.axis] - n.point.Coords[n.axis]
		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		visit(near)
		if h.Len() < k || diff*diff < h.dist[0] {
			visit(far)
		}
	}
	visit(t.root)

	type pair struct {
		idx int
		d   float64
	}
	pairs := make([]pair, h.Len())
	for i := range pairs {
		pairs[i] = pair{h.idx[i], h.dist[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].d < pairs[j].d })
	outIdx := make([]int, len(pairs))
	outDist := make([]float64, len(pairs))
	for i, p := range pairs {
		outIdx[i] = p.idx
		outDist[i] = p.d
	}
	return outIdx, outDist, nil
}

// WithinRadius returns, in any order, the indices of all points within
// radius of query (squared-Euclidean distance, spec §4.2).
func (t *Tree) WithinRadius(query []float64, radius float64) []int {
	if t.n == 0 {
		return nil
	}
	r2 := radius * radius
	var out []int
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil {
			return
		}
		if sqDist(query, n.point.Coords) <= r2 {
			out = append(out, n.point.Index)
		}
		diff := query[n.axis] - n.point.Coords[n.axis]
		if diff <= 0 {
			visit(n.left)
			if diff*diff <= r2 {
				visit(n.right)
			}
		} else {
			visit(n.right)
			if diff*diff <= r2 {
				visit(n.left)
			}
		}
	}
	visit(t.root)
	return out
}
