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

// Package flow implements FlowEngine (spec §4.5): D8, D-infinity, and
// MD-infinity pointer derivation from a conditioned DEM, and
// accumulation of flow by an inverse-inflow-count topological sweep.
package flow

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// PointerResult holds a derived flow-direction pointer plus whether any
// interior (non-edge) pits were found -- a signal callers surface as an
// advisory rather than an error, since a DEM with unresolved pits is
// still routable, just not hydrologically correct (spec §7).
type PointerResult struct {
	Pointer           *grid.Int8Grid
	InteriorPitsFound bool
}

// D8Pointer derives single-flow-direction pointers from dem: each cell
// points to the neighbor maximizing (z_center-z_neighbor)/length_i.
// Neighbors with value nodata are excluded from the slope comparison;
// a cell with no positive-slope neighbor is a sink (-1). A sink is only
// counted as an "interior pit" if none of its neighbors are nodata
// (spec §4.5 "D8 pointer from DEM").
func D8Pointer(dem *grid.GridStore) *PointerResult {
	rows, cols := dem.Rows, dem.Columns
	ptr := grid.NewInt8Grid(rows, cols, -2)
	interiorPit := false

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := dem.Get(r, c)
			if dem.IsNoData(z) {
				continue
			}
			dir := int8(-1)
			maxSlope := math.Inf(-1)
			neighboringNoData := false
			for i := 0; i < 8; i++ {
				zn := dem.Get(r+grid.DY[i], c+grid.DX[i])
				if dem.IsNoData(zn) {
					neighboringNoData = true
					continue
				}
				slope := (z - zn) / dem.StepLength(i)
				if slope > maxSlope && slope > 0 {
					maxSlope = slope
					dir = int8(i)
				}
			}
			if maxSlope > 0 {
				ptr.Set(r, c, dir)
			} else {
				ptr.Set(r, c, -1)
				if !neighboringNoData {
					interiorPit = true
				}
			}
		}
	}
	return &PointerResult{Pointer: ptr, InteriorPitsFound: interiorPit}
}

// DInfPointer derives the D-infinity (Tarboton 1997) pointer: for each
// of the eight triangular facets around the center, the steepest
// descent angle within the facet is computed in closed form; if that
// angle falls outside the facet it is clamped to the steeper of the
// facet's two bounding edges. The facet yielding the greatest positive
// slope wins. Output is degrees measured clockwise from north (0 =
// north, 90 = east, 270 = west), -1 for a cell with no downhill
// neighbor; it is not measured from east.
type DInfResult struct {
	Angle             *FloatGrid
	InteriorPitsFound bool
}

// dInfNoData marks a cell whose input DEM value was nodata, distinct
// from -1 which marks a valid cell with no downhill neighbor (a sink).
const dInfNoData = -99999

// FloatGrid is a dense float64 side grid with an explicit nodata
// marker, used for D-infinity angles and accumulation outputs -- values
// that don't fit GridStore's elevation-shaped semantics. NoData is kept
// distinct from the -1 "no downslope neighbor" sink marker Dinf angles
// use, matching the reference tool's separate nodata/sink sentinels.
type FloatGrid struct {
	Rows, Columns int
	NoData        float64
	data          []float64
}

// NewFloatGrid allocates a rows x columns grid filled with fill, using
// fill itself as the out-of-bounds/nodata sentinel.
func NewFloatGrid(rows, columns int, fill float64) *FloatGrid {
	return NewFloatGridNoData(rows, columns, fill, fill)
}

// NewFloatGridNoData allocates a rows x columns grid filled with fill,
// whose out-of-bounds reads return nodata.
func NewFloatGridNoData(rows, columns int, fill, nodata float64) *FloatGrid {
	d := make([]float64, rows*columns)
	for i := range d {
		d[i] = fill
	}
	return &FloatGrid{Rows: rows, Columns: columns, NoData: nodata, data: d}
}

// Get returns the value at (row, col), or NoData if out of bounds.
func (g *FloatGrid) Get(row, col int) float64 {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Columns {
		return g.NoData
	}
	return g.data[row*g.Columns+col]
}

// Set stores val at (row, col). Out-of-bounds is a no-op.
func (g *FloatGrid) Set(row, col int, val float64) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Columns {
		return
	}
	g.data[row*g.Columns+col] = val
}

// e1Col/e1Row/e2Col/e2Row describe, for each of the eight facets, the
// two edge-neighbor offsets of the triangle formed with the center
// (Tarboton's facet numbering, grounded on the D-infinity flow-accum
// reference implementation).
var (
	e1Col = [8]int{1, 0, 0, -1, -1, 0, 0, 1}
	e1Row = [8]int{0, -1, -1, 0, 0, 1, 1, 0}
	e2Col = [8]int{1, 1, -1, -1, -1, -1, 1, 1}
	e2Row = [8]int{-1, -1, -1, -1, 1, 1, 1, 1}
	acVal = [8]float64{0, 1, 1, 2, 2, 3, 3, 4}
	afVal = [8]float64{1, -1, 1, -1, 1, -1, 1, -1}
)

func DInfPointer(dem *grid.GridStore) *DInfResult {
	rows, cols := dem.Rows, dem.Columns
	angle := NewFloatGridNoData(rows, cols, -1, dInfNoData)
	interiorPit := false
	gridRes := (dem.ResolutionX + dem.ResolutionY) / 2
	diag := dem.DiagonalResolution()
	atanOf1 := math.Atan(1)
	halfPi := math.Pi / 2

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			e0 := dem.Get(row, col)
			if dem.IsNoData(e0) {
				angle.Set(row, col, dInfNoData)
				continue
			}
			dir := 360.0
			maxSlope := math.Inf(-1)
			neighboringNoData := false
			for i := 0; i < 8; i++ {
				ac, af := acVal[i], afVal[i]
				e1 := dem.Get(row+e1Row[i], col+e1Col[i])
				e2 := dem.Get(row+e2Row[i], col+e2Col[i])
				if dem.IsNoData(e1) || dem.IsNoData(e2) {
					neighboringNoData = true
					continue
				}
				if e0 > e1 && e0 > e2 {
					s1 := (e0 - e1) / gridRes
					s2 := (e1 - e2) / gridRes
					var r float64
					if s1 != 0 {
						r = math.Atan(s2 / s1)
					} else {
						r = halfPi
					}
					s := math.Hypot(s1, s2)
					if (s1 < 0 && s2 < 0) || (s1 < 0 && s2 == 0) || (s1 == 0 && s2 < 0) {
						s = -s
					}
					if r < 0 || r > atanOf1 {
						if r < 0 {
							r = 0
							s = s1
						} else {
							r = atanOf1
							s = (e0 - e2) / diag
						}
					}
					if s >= maxSlope {
						maxSlope = s
						dir = af*r + ac*halfPi
					}
				} else if e0 > e1 || e0 > e2 {
					var r, s float64
					if e0 > e1 {
						r, s = 0, (e0-e1)/gridRes
					} else {
						r, s = atanOf1, (e0-e2)/diag
					}
					if s >= maxSlope {
						maxSlope = s
						dir = af*r + ac*halfPi
					}
				}
			}
			if maxSlope > 0 {
				dir = 360 - dir*180/math.Pi + 90
				if dir > 360 {
					dir -= 360
				}
				angle.Set(row, col, dir)
			} else {
				angle.Set(row, col, -1)
				if !neighboringNoData {
					interiorPit = true
				}
			}
		}
	}
	return &DInfResult{Angle: angle, InteriorPitsFound: interiorPit}
}

// buildPntrMatches maps the on-disk 2^i (Whitebox) or ESRI D8 pointer
// encoding into 0..7 cell offsets (spec §4.5 "Pointer from external
// value" / §7 "D8 pointer encodings on disk"). Index 0 is unused; both
// schemes map any value without a neighbor mapping to -1 (no flow).
func buildPntrMatches(esri bool) [129]int8 {
	var m [129]int8
	for i := range m {
		m[i] = -1
	}
	whitebox := [8]int{1, 2, 4, 8, 16, 32, 64, 128}
	for i, v := range whitebox {
		if esri {
			// ESRI scheme assigns the same eight values to directions
			// shifted one position clockwise relative to Whitebox's.
			m[v] = int8((i + 1) % 8)
		} else {
			m[v] = int8(i)
		}
	}
	return m
}

// PointerFromExternal maps a pre-encoded D8 pointer raster (Whitebox
// 2^i scheme by default, or ESRI if esri is true) into the internal
// 0..7 pointer form via a 129-entry lookup. Values that decode to
// nothing become -1 (no flow); nodata cells stay nodata.
func PointerFromExternal(raw *grid.GridStore, esri bool) (*PointerResult, error) {
	if raw == nil {
		return nil, wberr.New(wberr.InvalidParam, "PointerFromExternal", "raw pointer grid is nil")
	}
	matches := buildPntrMatches(esri)
	rows, cols := raw.Rows, raw.Columns
	ptr := grid.NewInt8Grid(rows, cols, -2)
	interiorPit := false
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z := raw.Get(r, c)
			if raw.IsNoData(z) {
				continue
			}
			if z > 0 && int(z) < len(matches) {
				ptr.Set(r, c, matches[int(z)])
				continue
			}
			ptr.Set(r, c, -1)
			neighboringNoData := false
			for i := 0; i < 8; i++ {
				if raw.IsNoData(raw.Get(r+grid.DY[i], c+grid.DX[i])) {
					neighboringNoData = true
					break
				}
			}
			if !neighboringNoData {
				interiorPit = true
			}
		}
	}
	return &PointerResult{Pointer: ptr, InteriorPitsFound: interiorPit}, nil
}

// EncodeWhitebox converts an internal 0..7 pointer into the on-disk
// Whitebox 2^i scheme (-2 for nodata, 0 for sink).
func EncodeWhitebox(ptr *grid.Int8Grid) *grid.Int8Grid {
	return encodePointer(ptr, false)
}

// EncodeESRI converts an internal 0..7 pointer into the on-disk ESRI
// scheme, the Whitebox 2^i values rotated one step clockwise (spec §6
// "D8 pointer encodings on disk"); it is the inverse of
// PointerFromExternal's ESRI decoding.
func EncodeESRI(ptr *grid.Int8Grid) *grid.Int8Grid {
	return encodePointer(ptr, true)
}

func encodePointer(ptr *grid.Int8Grid, esri bool) *grid.Int8Grid {
	out := grid.NewInt8Grid(ptr.Rows, ptr.Columns, 0)
	whitebox := [8]int8{1, 2, 4, 8, 16, 32, 64, 128}
	for r := 0; r < ptr.Rows; r++ {
		for c := 0; c < ptr.Columns; c++ {
			d := ptr.Get(r, c)
			switch {
			case d == -2:
				out.Set(r, c, -2)
			case d == -1:
				out.Set(r, c, 0)
			default:
				v := whitebox[d]
				if esri {
					v = whitebox[(int(d)+7)%8]
				}
				out.Set(r, c, v)
			}
		}
	}
	return out
}
