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

// Package wberr defines the typed error kinds shared by every engine.
package wberr

import "fmt"

// Kind identifies one of the documented failure categories.
type Kind int

const (
	// InvalidParam indicates a parameter missing, out of range, or unparsable.
	InvalidParam Kind = iota
	// InputMismatch indicates grids or rasters disagree in rows/columns or resolution.
	InputMismatch
	// IoError indicates file not found, permission denied, truncated, or unrecognized format.
	IoError
	// NumericError indicates a determinant, variance, or denominator was zero
	// where a nonzero value was required and no conditioned fallback applied.
	NumericError
	// OutOfResources indicates an allocation failure for a grid or heap.
	OutOfResources
	// InteriorPitsFound is advisory: attached to an otherwise successful result.
	InteriorPitsFound
)

func (k Kind) String() string {
	switch k {
	case InvalidParam:
		return "InvalidParam"
	case InputMismatch:
		return "InputMismatch"
	case IoError:
		return "IoError"
	case NumericError:
		return "NumericError"
	case OutOfResources:
		return "OutOfResources"
	case InteriorPitsFound:
		return "InteriorPitsFound"
	default:
		return "Unknown"
	}
}

// Error is a structured engine failure carrying its Kind and the stage
// (component/operation) that produced it, mirroring the CLI's
// "last successful stage and a one-line cause" reporting contract.
type Error struct {
	K     Kind
	Stage string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.K, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.K, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error of the given kind.
func New(k Kind, stage, msg string) *Error {
	return &Error{K: k, Stage: stage, Msg: msg}
}

// Wrap constructs an *Error of the given kind wrapping an underlying cause.
func Wrap(k Kind, stage string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{K: k, Stage: stage, Msg: err.Error(), Err: err}
}

// Is reports whether err is a *Error of kind k.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.K == k
}

// Advisory is a non-fatal signal attached to an otherwise-successful result,
// e.g. InteriorPitsFound accompanying a flow-direction derivation.
type Advisory struct {
	K   Kind
	Msg string
}

func (a *Advisory) String() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", a.K, a.Msg)
}
