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

// Package obs provides the structured logging and stage-progress
// reporting shared by every engine and the CLI dispatcher.
package obs

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger. Engines and the CLI log
// through this instance with stage/tool/percent fields rather than
// bare fmt.Printf, per spec §7's "progress is reported by stage name
// and integer percent" contract.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Progress reports integer-percent progress for a named stage at most
// once per integer percent, matching spec §5's cancellation/timeout
// model ("progress ... at most once per integer percent").
type Progress struct {
	mu      sync.Mutex
	stage   string
	tool    string
	last    int
	started bool
}

// NewProgress begins progress reporting for a tool/stage pair.
func NewProgress(tool, stage string) *Progress {
	return &Progress{tool: tool, stage: stage, last: -1}
}

// Set reports pct (0-100) if it differs from the last reported value.
func (p *Progress) Set(pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pct == p.last {
		return
	}
	p.last = pct
	Log.WithFields(logrus.Fields{
		"tool":    p.tool,
		"stage":   p.stage,
		"percent": pct,
	}).Info("progress")
}

// Fail logs the terminal failure of a stage with its one-line cause.
func Fail(tool, stage string, err error) {
	Log.WithFields(logrus.Fields{
		"tool":  tool,
		"stage": stage,
	}).Error(err)
}

// Advise logs a non-fatal advisory (e.g. InteriorPitsFound) that does
// not change the exit code.
func Advise(tool, stage, msg string) {
	Log.WithFields(logrus.Fields{
		"tool":  tool,
		"stage": stage,
	}).Warn(msg)
}
