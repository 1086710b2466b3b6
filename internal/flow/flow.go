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

// Flow-direction model selection and the composed tool-level entry
// points a CLI dispatcher calls (spec §4.5, §6).
package flow

import "github.com/terrakit/wbtcore/internal/grid"

// Model selects which flow-direction algorithm an accumulation run uses.
type Model int

const (
	D8 Model = iota
	DInf
	MDInf
)

// Accumulate derives (if needed) a pointer from dem using model, then
// runs the matching topological-sweep accumulation, returning the
// result as a GridStore in dem's coordinate system plus whether any
// interior pits were encountered while deriving the pointer.
func Accumulate(dem *grid.GridStore, model Model, opts AccumulateOptions) (*grid.GridStore, bool, error) {
	switch model {
	case D8:
		pr := D8Pointer(dem)
		acc := AccumulateD8(pr.Pointer, dem.ResolutionX, dem.ResolutionY, opts)
		return floatGridToGridStore(acc, dem), pr.InteriorPitsFound, nil
	case DInf:
		dr := DInfPointer(dem)
		acc := AccumulateDInf(dr.Angle, dem.ResolutionX, dem.ResolutionY, opts)
		return floatGridToGridStore(acc, dem), dr.InteriorPitsFound, nil
	default: // MDInf
		acc := AccumulateMDInf(dem, opts)
		return floatGridToGridStore(acc, dem), false, nil
	}
}

func floatGridToGridStore(fg *FloatGrid, like *grid.GridStore) *grid.GridStore {
	out := grid.New(like.Rows, like.Columns, like.North, like.South, like.East, like.West, outNoData)
	for r := 0; r < fg.Rows; r++ {
		for c := 0; c < fg.Columns; c++ {
			out.Set(r, c, fg.Get(r, c))
		}
	}
	return out
}
