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

// Package stochastic implements StochasticEngine (spec §4.10):
// Monte-Carlo depression-probability analysis by repeatedly perturbing
// a DEM with spatially correlated noise, filling the perturbed
// surface, and accumulating how often each cell ends up inside a
// depression.
package stochastic

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/pflood"
	"github.com/terrakit/wbtcore/internal/roughness"
	"github.com/terrakit/wbtcore/internal/wberr"
	"github.com/terrakit/wbtcore/internal/workerpool"
)

// Options configures a StochasticEngine run.
type Options struct {
	Iterations int     // default 1000
	RMSE       float64 // error-model standard deviation, map-z units
	Range      float64 // spatial-correlation range, map units
}

// Run performs Options.Iterations independent Monte-Carlo trials, each
// on its own worker (spec §9's "coroutine" pattern: a shared iterator
// guarded by one mutex, via workerpool.Pool.RunIterations), and
// returns the per-cell probability of lying in a depression.
func Run(dem *grid.GridStore, opts Options) (*grid.GridStore, error) {
	if opts.Iterations <= 0 {
		return nil, wberr.New(wberr.InvalidParam, "StochasticEngine", "iterations must be positive")
	}
	if dem.ResolutionX <= 0 {
		return nil, wberr.New(wberr.InvalidParam, "StochasticEngine", "resolution_x must be positive")
	}

	rows, cols := dem.Rows, dem.Columns
	sigma := opts.Range / dem.ResolutionX
	counts := make([]uint32, rows*cols)

	var ref *referenceTable
	if opts.RMSE > 0 {
		ref = buildReferenceTable(opts.RMSE)
	}

	pool := workerpool.New()
	err := pool.RunIterations(opts.Iterations, func(iteration int) error {
		rng := rand.New(rand.NewSource(iterationSeed(iteration)))

		var errorField *grid.GridStore
		if ref == nil {
			errorField = grid.InitializeLike(dem, 0)
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					if dem.IsNoData(dem.Get(r, c)) {
						errorField.Set(r, c, dem.NoData)
					}
				}
			}
		} else {
			field := sampleStandardNormalField(dem, rng)
			blurred := roughness.Smooth(field, sigma)
			errorField = histogramMatch(blurred, ref)
		}

		perturbed := grid.InitializeLike(dem, dem.NoData)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				z := dem.Get(r, c)
				if dem.IsNoData(z) {
					continue
				}
				perturbed.Set(r, c, z+errorField.Get(r, c))
			}
		}

		filled := pflood.Run(perturbed).Output

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if dem.IsNoData(dem.Get(r, c)) {
					continue
				}
				if filled.Get(r, c) > perturbed.Get(r, c) {
					atomic.AddUint32(&counts[r*cols+c], 1)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := grid.InitializeLike(dem, dem.NoData)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				continue
			}
			out.Set(r, c, float64(counts[r*cols+c])/float64(opts.Iterations))
		}
	}
	return out, nil
}

// iterationSeed derives a distinct, reproducible RNG seed per
// iteration instead of seeding from the wall clock, so runs remain
// deterministic for a fixed iteration index.
func iterationSeed(iteration int) int64 {
	return int64(iteration)*2654435761 + 1
}

func sampleStandardNormalField(dem *grid.GridStore, rng *rand.Rand) *grid.GridStore {
	out := grid.InitializeLike(dem, dem.NoData)
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				continue
			}
			out.Set(r, c, rng.NormFloat64())
		}
	}
	return out
}

// histogramMatch remaps field's values so their empirical CDF (in 1024
// bins, or more if field's range exceeds 1024) matches ref's reference
// normal CDF (spec §4.10 step 3).
func histogramMatch(field *grid.GridStore, ref *referenceTable) *grid.GridStore {
	minV, maxV, ok := field.MinMax()
	if !ok {
		return field
	}
	numBins := int(math.Ceil(math.Max(maxV-minV, 1024)))
	if numBins < 1 {
		numBins = 1
	}
	binSize := (maxV - minV) / float64(numBins)
	if binSize == 0 {
		binSize = 1
	}

	histogram := make([]float64, numBins)
	var total float64
	binOf := func(z float64) int {
		b := int((z - minV) / binSize)
		if b >= numBins {
			b = numBins - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	for r := 0; r < field.Rows; r++ {
		for c := 0; c < field.Columns; c++ {
			z := field.Get(r, c)
			if field.IsNoData(z) {
				continue
			}
			histogram[binOf(z)]++
			total++
		}
	}
	if total == 0 {
		return field
	}

	cdf := make([]float64, numBins)
	cdf[0] = histogram[0]
	for i := 1; i < numBins; i++ {
		cdf[i] = cdf[i-1] + histogram[i]
	}
	for i := range cdf {
		cdf[i] /= total
	}

	out := grid.InitializeLike(field, field.NoData)
	for r := 0; r < field.Rows; r++ {
		for c := 0; c < field.Columns; c++ {
			z := field.Get(r, c)
			if field.IsNoData(z) {
				continue
			}
			p := cdf[binOf(z)]
			out.Set(r, c, ref.invert(p))
		}
	}
	return out
}
