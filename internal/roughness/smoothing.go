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

package roughness

import (
	"math"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/sat"
)

// Smooth applies a Gaussian blur of standard deviation sigma to dem. If
// sigma < 1.8 a discrete truncated Gaussian kernel is used directly;
// otherwise the fast-almost-Gaussian approximation (four repeated box
// filters, matching the target variance) is used instead, since a true
// Gaussian kernel that wide would be prohibitively slow cell-by-cell
// (spec §4.7 "Smoothing").
func Smooth(dem *grid.GridStore, sigma float64) *grid.GridStore {
	if sigma < 1.8 {
		return smoothGaussian(dem, sigma)
	}
	return smoothFastAlmostGaussian(dem, sigma)
}

// smoothGaussian convolves dem with a discrete truncated Gaussian
// kernel of radius ceil(3*sigma), weights exp(-r^2/2sigma^2) normalized
// over valid (non-nodata) neighbors.
func smoothGaussian(dem *grid.GridStore, sigma float64) *grid.GridStore {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	weights := make([][]float64, 2*radius+1)
	for i := range weights {
		weights[i] = make([]float64, 2*radius+1)
		dy := i - radius
		for j := range weights[i] {
			dx := j - radius
			r2 := float64(dx*dx + dy*dy)
			weights[i][j] = math.Exp(-r2/(2*sigma*sigma)) / (sigma * math.Sqrt(2*math.Pi))
		}
	}

	out := grid.InitializeLike(dem, dem.NoData)
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Columns; c++ {
			if dem.IsNoData(dem.Get(r, c)) {
				continue
			}
			var sum, wsum float64
			for i := -radius; i <= radius; i++ {
				for j := -radius; j <= radius; j++ {
					v := dem.Get(r+i, c+j)
					if dem.IsNoData(v) {
						continue
					}
					w := weights[i+radius][j+radius]
					sum += v * w
					wsum += w
				}
			}
			if wsum > 0 {
				out.Set(r, c, sum/wsum)
			}
		}
	}
	return out
}

// smoothFastAlmostGaussian approximates a sigma-width Gaussian with
// four passes of box filters whose widths w_l (odd) and w_u = w_l+2
// are chosen so the combined variance matches 12*sigma^2/n+1 (n=4
// passes), rebuilding the summed-area table each pass so every pass
// sees the previous pass's output (spec §4.7).
func smoothFastAlmostGaussian(dem *grid.GridStore, sigma float64) *grid.GridStore {
	const n = 4
	ideal := math.Sqrt(12*sigma*sigma/n + 1)
	wl := int(math.Floor(ideal))
	if wl%2 == 0 {
		wl--
	}
	if wl < 1 {
		wl = 1
	}
	wu := wl + 2

	// m selects how many of the n passes use w_u vs w_l so the total
	// variance matches the target as closely as an integer split allows.
	m := int(math.Round((12*sigma*sigma - float64(n)*float64(wl*wl) - 4*float64(n)*float64(wl) - 3*float64(n)) /
		(-4 * float64(wl+1))))
	if m < 0 {
		m = 0
	}
	if m > n {
		m = n
	}

	cur := dem
	for pass := 0; pass < n; pass++ {
		w := wl
		if pass < m {
			w = wu
		}
		radius := w / 2
		table := sat.Build(cur)
		next := grid.InitializeLike(cur, cur.NoData)
		for r := 0; r < cur.Rows; r++ {
			for c := 0; c < cur.Columns; c++ {
				if cur.IsNoData(cur.Get(r, c)) {
					continue
				}
				mean := table.WindowMean(r, c, radius, cur.NoData)
				if cur.IsNoData(mean) {
					next.Set(r, c, cur.Get(r, c))
				} else {
					next.Set(r, c, mean)
				}
			}
		}
		cur = next
	}
	return cur
}
