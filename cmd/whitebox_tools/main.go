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

// whitebox_tools is the single-binary CLI dispatcher (spec §6): each
// tool is invoked as `whitebox_tools -r=<ToolName> [--wd=<dir>] [-v]
// --<flag>=<value>...`. This is deliberately not cobra/sub-command
// shaped: the real CLI is one dispatcher keyed by -r, so each tool gets
// its own pflag.FlagSet built after the tool name is known, rather than
// a tree of registered subcommands (see DESIGN.md).
package main

import (
	"fmt"
	"os"

	"github.com/terrakit/wbtcore/internal/config"
	"github.com/terrakit/wbtcore/internal/obs"
)

const versionString = "whitebox_tools (wbtcore) 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := config.LoadNextToExecutable(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}

	g := parseGlobalFlags(args)

	if g.version {
		fmt.Println(versionString)
		return 0
	}
	if g.help && g.tool == "" {
		printToolList()
		return 0
	}
	if g.tool == "" {
		fmt.Fprintln(os.Stderr, "no tool specified; use -r=<ToolName> (-h for a list)")
		return 1
	}

	t, ok := registry[g.tool]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown tool %q (-h for a list)\n", g.tool)
		return 1
	}
	if g.help {
		fmt.Println(t.Usage)
		return 0
	}

	wd := g.wd
	if wd == "" {
		if cwd, err := os.Getwd(); err == nil {
			wd = cwd
		}
	}

	prog := obs.NewProgress(t.Name, "run")
	prog.Set(0)
	if err := t.Run(wd, g.rest, g.verbose); err != nil {
		obs.Fail(t.Name, "run", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", t.Name, err)
		return 1
	}
	prog.Set(100)
	return 0
}
