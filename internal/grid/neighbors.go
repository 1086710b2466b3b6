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

package grid

import "math"

// DX and DY enumerate the eight neighbors clockwise from east, per
// spec §3: (dx,dy) = (+1,-1),(+1,0),(+1,+1),(0,+1),(-1,+1),(-1,0),(-1,-1),(0,-1).
var (
	DX = [8]int{1, 1, 1, 0, -1, -1, -1, 0}
	DY = [8]int{-1, 0, 1, 1, 1, 0, -1, -1}
)

// BackLink returns the back-link index of neighbor direction i: (i+4) mod 8.
func BackLink(i int) int { return (i + 4) % 8 }

// IsDiagonal reports whether direction i is a diagonal (vs. cardinal) move.
func IsDiagonal(i int) bool { return i%2 == 0 }

// StepLength returns the center-to-neighbor distance for direction i,
// alternating between cardinal and diagonal lengths derived from the
// grid's x/y resolution (spec §4.5).
func (g *GridStore) StepLength(i int) float64 {
	if IsDiagonal(i) {
		return math.Hypot(g.ResolutionX, g.ResolutionY)
	}
	if i == 1 || i == 5 {
		return g.ResolutionX
	}
	return g.ResolutionY
}

// DiagonalResolution is sqrt(resolution_x^2 + resolution_y^2), used by
// the flat-increment formula in DepressionEngine (spec §4.6).
func (g *GridStore) DiagonalResolution() float64 {
	return math.Hypot(g.ResolutionX, g.ResolutionY)
}
