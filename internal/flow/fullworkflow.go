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

package flow

import (
	"fmt"

	"github.com/terrakit/wbtcore/internal/depression"
	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// FullWorkflowOptions configures the convenience composition of
// DepressionEngine + FlowEngine (spec §6.13).
type FullWorkflowOptions struct {
	FillMaxDepth float64
	FlatDelta    float64
	Model        Model
	Accumulate   AccumulateOptions
}

// FullWorkflow chains depression filling (with flat resolution), D8/D∞/
// MD∞ pointer derivation, and accumulation into one operation, the way
// the reference tool's full-workflow convenience variant did: it is a
// thin composition of the two engines, not a new algorithm. It returns
// the conditioned DEM, the accumulation grid, and an advisory if
// interior pits were found and resolved by filling.
func FullWorkflow(dem *grid.GridStore, opts FullWorkflowOptions) (conditioned, accumulation *grid.GridStore, advisory *wberr.Advisory, err error) {
	if dem == nil {
		return nil, nil, nil, wberr.New(wberr.InvalidParam, "FullWorkflow", "input DEM is nil")
	}

	pits, ferr := depression.FindPits(dem)
	if ferr != nil {
		return nil, nil, nil, ferr
	}

	filled := depression.Fill(dem, depression.FillOptions{MaxDepth: opts.FillMaxDepth})
	conditioned = depression.ResolveFlats(dem, filled, opts.FlatDelta)

	acc, interiorPits, aerr := Accumulate(conditioned, opts.Model, opts.Accumulate)
	if aerr != nil {
		return nil, nil, nil, aerr
	}

	if interiorPits || len(pits) > 0 {
		pctFilled := 100 * float64(len(pits)) / float64(dem.Rows*dem.Columns)
		advisory = &wberr.Advisory{
			K:   wberr.InteriorPitsFound,
			Msg: fmt.Sprintf("%d pits found and conditioned (%.2f%% of cells) before accumulation", len(pits), pctFilled),
		}
	}

	return conditioned, acc, advisory, nil
}
