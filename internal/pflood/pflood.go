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

// Package pflood implements PriorityFlood (spec §4.4): a shared
// flood-from-edges subroutine used by depression filling, flow-
// direction refinement, and stochastic analysis.
//
// The min-heap is container/heap over a (row, col, z) item with an
// insertion-sequence tiebreak, the idiomatic Go replacement for
// jblindsay/go-spatial's hand-rolled PQueue (keyed on
// gridCell+flatIndex) used for the identical algorithm before it was
// ported to Rust's BinaryHeap.
package pflood

import (
	"container/heap"

	"github.com/terrakit/wbtcore/internal/grid"
)

type item struct {
	row, col int
	z        float64
	seq      int64
}

type minHeap []item

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].z != h[j].z {
		return h[i].z < h[j].z
	}
	// Tie-break by insertion order, not coordinates (spec §9).
	return h[i].seq < h[j].seq
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) {
	*h = append(*h, x.(item))
}
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Result is the output of a PriorityFlood run: every reachable cell is
// resolved to either a non-decreasing elevation along the flood front,
// or nodata.
type Result struct {
	Output *grid.GridStore
}

// Run floods input from the raster frame inward. The output is seeded
// with nodata at the frame; cells adjacent to nodata or the frame are
// discovered in ascending input order and pushed to the heap, then the
// flood proceeds popping the minimum-output cell and propagating
// max(neighbor_input, center_output) to background neighbors (spec
// §4.4). Run performs no flat resolution, which makes it directly the
// "no flat resolution" fill used by StochasticEngine (spec §4.10 step 5).
func Run(input *grid.GridStore) *Result {
	rows, cols := input.Rows, input.Columns
	output := grid.New(rows, cols, input.North, input.South, input.East, input.West, input.NoData)
	background := make([]bool, rows*cols)
	for i := range background {
		background[i] = true
	}
	idx := func(r, c int) int { return r*cols + c }

	h := &minHeap{}
	heap.Init(h)
	var seq int64

	push := func(r, c int, z float64) {
		heap.Push(h, item{row: r, col: c, z: z, seq: seq})
		seq++
	}

	// Frame seeding (spec §4.4 step 1). A cell is an "edge cell" if it
	// is non-nodata but has a neighbor that reads as nodata -- either
	// because that neighbor is off the grid (GridStore.Get already
	// returns nodata there) or because it sits against an interior
	// nodata region, e.g. the inner or outer boundary of a nodata
	// donut. Edge cells that are the lowest among their non-nodata
	// neighbors seed the flood directly, which is what lets the flood
	// reach pockets of valid cells fully enclosed by nodata.
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := input.Get(r, c)
			if input.IsNoData(z) {
				continue
			}
			isEdgeCell := false
			isLowestAmongValid := true
			for n := 0; n < 8; n++ {
				nr, nc := r+grid.DY[n], c+grid.DX[n]
				nz := input.Get(nr, nc)
				if input.IsNoData(nz) {
					isEdgeCell = true
					continue
				}
				if nz < z {
					isLowestAmongValid = false
				}
			}
			if isEdgeCell && isLowestAmongValid {
				output.Set(r, c, z)
				background[idx(r, c)] = false
				push(r, c, z)
			}
		}
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(item)
		z := output.Get(top.row, top.col)
		for n := 0; n < 8; n++ {
			nr, nc := top.row+grid.DY[n], top.col+grid.DX[n]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			if !background[idx(nr, nc)] {
				continue
			}
			nIn := input.Get(nr, nc)
			if input.IsNoData(nIn) {
				output.Set(nr, nc, input.NoData)
				background[idx(nr, nc)] = false
				continue
			}
			outZ := nIn
			if outZ < z {
				outZ = z
			}
			output.Set(nr, nc, outZ)
			background[idx(nr, nc)] = false
			push(nr, nc, outZ)
		}
	}

	return &Result{Output: output}
}
