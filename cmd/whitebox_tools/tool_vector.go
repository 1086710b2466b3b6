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
	"fmt"

	"github.com/spf13/pflag"

	"github.com/terrakit/wbtcore/internal/depression"
	"github.com/terrakit/wbtcore/internal/vectorio"
	"github.com/terrakit/wbtcore/internal/wberr"
)

func init() {
	register(Tool{
		Name:  "ExportPitsToVector",
		Usage: "--dem=<file> --output=<shapefile base path, no extension>",
		Run:   runExportPitsToVector,
	})
}

func runExportPitsToVector(wd string, args []string, verbose bool) error {
	fs := pflag.NewFlagSet("ExportPitsToVector", pflag.ContinueOnError)
	dem := fs.String("dem", "", "input DEM")
	output := fs.String("output", "", "output Point shapefile (no extension)")
	if err := fs.Parse(args); err != nil {
		return wberr.Wrap(wberr.InvalidParam, "ExportPitsToVector", err)
	}
	demGrid, err := readRaster(resolvePath(wd, *dem))
	if err != nil {
		return err
	}
	pits, err := depression.FindPits(demGrid)
	if err != nil {
		return err
	}
	features := make([]vectorio.Feature, len(pits))
	for i, p := range pits {
		features[i] = vectorio.Feature{
			Type:  vectorio.GeometryPoint,
			Point: [2]float64{demGrid.XFromCol(p.Col), demGrid.YFromRow(p.Row)},
			Attributes: map[string]string{
				"ELEV": fmt.Sprintf("%.6f", p.Elevation),
			},
		}
	}
	fields := []vectorio.FieldSpec{{Name: "ELEV", Length: 19, Precision: 6, IsFloat: true}}
	if err := vectorio.Write(resolvePath(wd, *output), vectorio.GeometryPoint, fields, features); err != nil {
		return wberr.Wrap(wberr.IoError, "ExportPitsToVector", err)
	}
	return nil
}
