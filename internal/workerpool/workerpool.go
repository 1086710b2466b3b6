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

// Package workerpool implements WorkerPool (spec §4.11, §5): data-
// parallel execution over row ranges, partitioned by row % numProcs ==
// tid, with each worker sending (row, payload) results to a single
// collector over a channel. The collector writes results in by row
// index, not arrival order, so output is deterministic regardless of
// goroutine interleaving.
//
// This generalizes the row-striped goroutine fan-out pattern
// (sync.WaitGroup + "for ii := procNum; ii < n; ii += nprocs" striding
// over per-cell work) from per-Cell computation to
// per-row-range computation with a result channel.
package workerpool

import (
	"sync"
	"sync/atomic"

	"github.com/terrakit/wbtcore/internal/config"
)

// Result pairs a row index with whatever a worker computed for that row.
type Result struct {
	Row     int
	Payload interface{}
	Err     error
}

// RowFunc computes the payload for a single row. It must not mutate
// state shared with other rows without owning it exclusively.
type RowFunc func(row int) (interface{}, error)

// Run partitions rows [0,numRows) across min(config.MaxProcs(), numRows)
// workers by row % P == tid, invokes fn for every row, and returns the
// collected per-row results ordered by row index. The first error
// encountered aborts collection of further results (spec §7: "a failed
// worker sends its error on the channel; the collector aborts the
// remaining workers at the next row boundary").
func Run(numRows int, fn RowFunc) ([]Result, error) {
	if numRows == 0 {
		return nil, nil
	}
	procs := config.MaxProcs()
	if procs > numRows {
		procs = numRows
	}
	if procs < 1 {
		procs = 1
	}

	results := make([]Result, numRows)
	ch := make(chan Result, numRows)
	var stop int32
	var wg sync.WaitGroup
	wg.Add(procs)
	for tid := 0; tid < procs; tid++ {
		go func(tid int) {
			defer wg.Done()
			for row := tid; row < numRows; row += procs {
				if atomic.LoadInt32(&stop) != 0 {
					return
				}
				payload, err := fn(row)
				ch <- Result{Row: row, Payload: payload, Err: err}
			}
		}(tid)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	var firstErr error
	for r := range ch {
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
			atomic.StoreInt32(&stop, 1)
		}
		results[r.Row] = r
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// Pool is a reusable worker pool bound to a fixed process count, for
// callers that want to run several Run-shaped stages without
// re-resolving config.MaxProcs() each time (e.g. StochasticEngine's
// per-iteration runs, spec §4.10).
type Pool struct {
	Procs int
}

// New returns a Pool sized from the process-wide configuration.
func New() *Pool {
	return &Pool{Procs: config.MaxProcs()}
}

// RunIterations runs n independent iterations across the pool, calling
// fn(iteration) for each. Unlike Run, iterations are not associated
// with output rows: the caller's fn is responsible for writing into
// shared per-iteration storage (e.g. an accumulator grid) using whatever
// synchronization that storage needs. This mirrors spec §9's "each
// iteration is independent; schedule via a shared iterator guarded by
// one mutex" StochasticEngine pattern.
func (p *Pool) RunIterations(n int, fn func(iteration int) error) error {
	procs := p.Procs
	if procs > n {
		procs = n
	}
	if procs < 1 {
		procs = 1
	}
	var mu sync.Mutex
	next := 0
	var wg sync.WaitGroup
	errs := make([]error, 0, 1)
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if next >= n {
					mu.Unlock()
					return
				}
				it := next
				next++
				mu.Unlock()

				if err := fn(it); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
