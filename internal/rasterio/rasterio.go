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

// Package rasterio implements the raster I/O boundary collaborator
// (spec §6): readers and writers for the four raster formats
// whitebox_tools supports at the byte level — Whitebox .dep, ESRI
// BIL, SAGA .sdat, and a minimal single-strip GeoTIFF — so that every
// engine in internal/ sees only the abstract grid.GridStore and never
// an on-disk byte layout.
package rasterio

import (
	"path/filepath"
	"strings"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// Format identifies one of the four supported raster codecs.
type Format int

const (
	FormatDep Format = iota
	FormatBIL
	FormatSDAT
	FormatGeoTIFF
)

// DetectFormat chooses a codec from a file's extension, the same
// dispatch whitebox_tools performs when a tool's input/output
// parameter names a raster file without an explicit format flag.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dep":
		return FormatDep, nil
	case ".bil":
		return FormatBIL, nil
	case ".sdat":
		return FormatSDAT, nil
	case ".tif", ".tiff":
		return FormatGeoTIFF, nil
	default:
		return 0, wberr.New(wberr.IoError, "rasterio", "unrecognized raster extension: "+path)
	}
}

// Read loads path into a GridStore, detecting the codec from its
// extension.
func Read(path string) (*grid.GridStore, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDep:
		return readDep(path)
	case FormatBIL:
		return readBIL(path)
	case FormatSDAT:
		return readSDAT(path)
	case FormatGeoTIFF:
		return readGeoTIFF(path)
	}
	return nil, wberr.New(wberr.IoError, "rasterio", "unreachable format")
}

// Write saves g to path in the codec implied by path's extension.
func Write(path string, g *grid.GridStore) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatDep:
		return writeDep(path, g)
	case FormatBIL:
		return writeBIL(path, g)
	case FormatSDAT:
		return writeSDAT(path, g)
	case FormatGeoTIFF:
		return writeGeoTIFF(path, g)
	}
	return wberr.New(wberr.IoError, "rasterio", "unreachable format")
}
