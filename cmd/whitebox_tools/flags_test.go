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

package main

import (
	"reflect"
	"testing"
)

func TestParseGlobalFlagsEqualsForm(t *testing.T) {
	g := parseGlobalFlags([]string{"-r=FillDepressions", "--wd=/data", "-v", "--dem=in.dep", "--output=out.dep"})
	if g.tool != "FillDepressions" {
		t.Errorf("tool = %q, want FillDepressions", g.tool)
	}
	if g.wd != "/data" {
		t.Errorf("wd = %q, want /data", g.wd)
	}
	if !g.verbose {
		t.Errorf("verbose = false, want true")
	}
	want := []string{"--dem=in.dep", "--output=out.dep"}
	if !reflect.DeepEqual(g.rest, want) {
		t.Errorf("rest = %v, want %v", g.rest, want)
	}
}

func TestParseGlobalFlagsSpaceForm(t *testing.T) {
	g := parseGlobalFlags([]string{"-r", "D8Pointer", "--wd", "/tmp/x", "--dem", "in.dep"})
	if g.tool != "D8Pointer" {
		t.Errorf("tool = %q, want D8Pointer", g.tool)
	}
	if g.wd != "/tmp/x" {
		t.Errorf("wd = %q, want /tmp/x", g.wd)
	}
}

func TestParseGlobalFlagsQuotesStripped(t *testing.T) {
	g := parseGlobalFlags([]string{`-r="FillDepressions"`})
	if g.tool != "FillDepressions" {
		t.Errorf("tool = %q, want FillDepressions (quotes stripped)", g.tool)
	}
}

func TestParseGlobalFlagsHelpAndVersion(t *testing.T) {
	g := parseGlobalFlags([]string{"-h"})
	if !g.help {
		t.Errorf("help = false, want true")
	}
	g = parseGlobalFlags([]string{"--version"})
	if !g.version {
		t.Errorf("version = false, want true")
	}
}

func TestResolvePathRelativeToWorkingDir(t *testing.T) {
	got := resolvePath("/data/project", "dem.dep")
	want := "/data/project/dem.dep"
	if got != want {
		t.Errorf("resolvePath = %q, want %q", got, want)
	}
}

func TestResolvePathWithSeparatorIsUntouched(t *testing.T) {
	got := resolvePath("/data/project", "/abs/dem.dep")
	if got != "/abs/dem.dep" {
		t.Errorf("resolvePath = %q, want /abs/dem.dep", got)
	}
}

func TestSplitFileListSemicolon(t *testing.T) {
	got := splitFileList("/wd", "a.dep;b.dep; c.dep")
	want := []string{"/wd/a.dep", "/wd/b.dep", "/wd/c.dep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitFileList = %v, want %v", got, want)
	}
}

func TestSplitFileListComma(t *testing.T) {
	got := splitFileList("/wd", "a.dep,b.dep")
	want := []string{"/wd/a.dep", "/wd/b.dep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitFileList = %v, want %v", got, want)
	}
}
