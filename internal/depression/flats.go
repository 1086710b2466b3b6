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

package depression

import (
	"container/heap"

	"github.com/terrakit/wbtcore/internal/grid"
)

// flatItem orders the flat-resolution heap by the ORIGINAL (pre-fill)
// elevation, so the synthetic gradient laid across a flat plateau
// still prefers to start from the cell that was naturally lowest
// before filling (spec §4.6 "the imposed gradient follows natural
// micro-topography").
type flatItem struct {
	row, col  int
	inputElev float64
	seq       int64
}

type flatHeap []flatItem

func (h flatHeap) Len() int { return len(h) }
func (h flatHeap) Less(i, j int) bool {
	if h[i].inputElev != h[j].inputElev {
		return h[i].inputElev < h[j].inputElev
	}
	return h[i].seq < h[j].seq
}
func (h flatHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *flatHeap) Push(x interface{}) {
	*h = append(*h, x.(flatItem))
}
func (h *flatHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// ResolveFlats imposes a monotonic gradient on the flat plateaus a Fill
// pass introduces (spec §4.6 "Flat resolution"). Cells left unaltered
// by filling (output == input) are the seeds; every other cell is
// reached once, from an already-resolved neighbor. If its filled value
// is not above that neighbor's output it is raised to the neighbor's
// output plus delta; otherwise it keeps its filled value. If delta is
// 0, DefaultDelta(dem) is used.
func ResolveFlats(dem, filled *grid.GridStore, delta float64) *grid.GridStore {
	if delta == 0 {
		delta = DefaultDelta(dem)
	}
	rows, cols := dem.Rows, dem.Columns
	out := filled.Clone()
	resolved := make([]bool, rows*cols)
	idx := func(r, c int) int { return r*cols + c }

	h := &flatHeap{}
	heap.Init(h)
	var seq int64
	push := func(r, c int, inputElev float64) {
		heap.Push(h, flatItem{row: r, col: c, inputElev: inputElev, seq: seq})
		seq++
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				resolved[idx(r, c)] = true
				continue
			}
			if filled.Get(r, c) == z {
				resolved[idx(r, c)] = true
				push(r, c, z)
			}
		}
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(flatItem)
		baseZ := out.Get(top.row, top.col)
		for i := 0; i < 8; i++ {
			nr, nc := top.row+grid.DY[i], top.col+grid.DX[i]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			if resolved[idx(nr, nc)] {
				continue
			}
			nz := dem.Get(nr, nc)
			if dem.IsNoData(nz) {
				resolved[idx(nr, nc)] = true
				continue
			}
			candidate := filled.Get(nr, nc)
			if candidate <= baseZ {
				candidate = baseZ + delta
			}
			out.Set(nr, nc, candidate)
			resolved[idx(nr, nc)] = true
			push(nr, nc, nz)
		}
	}

	return out
}
