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

// Package report implements the HTML report boundary collaborator
// (spec §6): self-contained HTML pages with inline CSS and inline SVG
// plots, no external assets, opened through the platform's default
// URL opener. Plots are rendered with gonum.org/v1/plot's SVG canvas
// (the same plotting stack used elsewhere for report generation,
// ctessum/plotextra layered over gonum/plot).
package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/terrakit/wbtcore/internal/wberr"
)

// Series is one named (x, y) curve to plot, e.g. a histogram-matching
// CDF comparison or a slope-versus-elevation profile.
type Series struct {
	Name   string
	Points plotter.XYs
}

// Plot renders title/xlabel/ylabel and one or more series into a
// single inline SVG fragment sized widthPt x heightPt (points).
func Plot(title, xLabel, yLabel string, widthPt, heightPt float64, series []Series) (string, error) {
	p, err := plot.New()
	if err != nil {
		return "", wberr.Wrap(wberr.NumericError, "report", err)
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	for _, s := range series {
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return "", wberr.Wrap(wberr.NumericError, "report", err)
		}
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}

	canvas := vgsvg.New(vg.Points(widthPt), vg.Points(heightPt))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err != nil {
		return "", wberr.Wrap(wberr.IoError, "report", err)
	}
	return buf.String(), nil
}

// Section is one block of a report: a heading, a paragraph of text,
// an optional inline SVG plot, and an optional table.
type Section struct {
	Heading string
	Text    string
	SVG     string
	Table   *Table
}

// Table is a simple header/rows table rendered as an HTML <table>.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Page is a full report: a title and an ordered list of sections.
type Page struct {
	Title    string
	Sections []Section
}

// Render assembles p into a self-contained HTML document with inline
// CSS and no external assets (spec §6 "HTML reports").
func Render(p Page) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Title))
	b.WriteString("<style>\n")
	b.WriteString("body{font-family:sans-serif;margin:2em;color:#222}\n")
	b.WriteString("h1{border-bottom:2px solid #444}\n")
	b.WriteString("h2{color:#444}\n")
	b.WriteString("table{border-collapse:collapse;margin:1em 0}\n")
	b.WriteString("td,th{border:1px solid #ccc;padding:4px 8px;text-align:right}\n")
	b.WriteString("svg{max-width:100%}\n")
	b.WriteString("</style></head><body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(p.Title))

	for _, s := range p.Sections {
		if s.Heading != "" {
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(s.Heading))
		}
		if s.Text != "" {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(s.Text))
		}
		if s.Table != nil {
			renderTable(&b, s.Table)
		}
		if s.SVG != "" {
			b.WriteString(s.SVG)
			b.WriteString("\n")
		}
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func renderTable(b *strings.Builder, t *Table) {
	b.WriteString("<table>\n<tr>")
	for _, h := range t.Headers {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

// Write renders p and saves it to path.
func Write(path string, p Page) error {
	if err := os.WriteFile(path, []byte(Render(p)), 0o644); err != nil {
		return wberr.Wrap(wberr.IoError, "report", err)
	}
	return nil
}

// Show spawns the platform's default URL opener on path (spec §6:
// "open" on macOS, "explorer.exe" on Windows, "xdg-open" on Linux),
// the behavior a tool triggers when run with -v.
func Show(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer.exe", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return wberr.Wrap(wberr.IoError, "report", err)
	}
	return nil
}
