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

package stochastic

import "gonum.org/v1/gonum/stat/distuv"

// referenceTable is the 100-bin inverse-CDF lookup table for a zero-
// mean normal distribution of the user-specified RMSE, plus 10
// starting-bin indices (one per decile) that let the per-cell inverse
// lookup start its linear scan close to the answer instead of at bin
// 0 (spec §4.10 step 3).
type referenceTable struct {
	xs           [100]float64
	cdf          [100]float64
	startingVals [11]int
}

// buildReferenceTable constructs the reference CDF analytically with
// gonum/stat/distuv.Normal rather than summing a discretized PDF by
// hand, since the reference distribution is exactly normal and gonum
// already implements its CDF.
func buildReferenceTable(rmse float64) *referenceTable {
	dist := distuv.Normal{Mu: 0, Sigma: rmse}
	t := &referenceTable{}
	pStep := 6 * rmse / 99
	for i := 0; i < 100; i++ {
		x := -3*rmse + float64(i)*pStep
		t.xs[i] = x
		t.cdf[i] = dist.CDF(x)
	}
	for i := 0; i < 100; i++ {
		p := t.cdf[i]
		for decile := 1; decile <= 10; decile++ {
			threshold := float64(decile) / 10
			if decile == 10 {
				if p <= 1 {
					t.startingVals[decile] = i
				}
			} else if p < threshold {
				t.startingVals[decile] = i
			}
		}
	}
	return t
}

// invert maps an empirical CDF value p (0..1) back to the reference
// distribution's x value by linear interpolation between the two
// bracketing table entries, starting the scan from the decile bucket
// p falls into.
func (t *referenceTable) invert(p float64) float64 {
	j := int(p * 10)
	if j > 10 {
		j = 10
	}
	start := t.startingVals[j]
	for i := start; i < 100; i++ {
		if t.cdf[i] > p {
			if i == 0 {
				return t.xs[i]
			}
			x1, x2 := t.xs[i-1], t.xs[i]
			p1, p2 := t.cdf[i-1], t.cdf[i]
			if p1 == p2 {
				return x1
			}
			return x1 + (x2-x1)*((p-p1)/(p2-p1))
		}
	}
	return t.xs[99]
}
