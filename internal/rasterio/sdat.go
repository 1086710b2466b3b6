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

package rasterio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/terrakit/wbtcore/internal/grid"
	"github.com/terrakit/wbtcore/internal/wberr"
)

// SAGA GIS: an NCOLS/NROWS/CELLSIZE-keyed ASCII .sgrd sidecar plus a
// raw row-major binary .sdat body, 64-bit little-endian doubles. The
// writer always emits TOPTOBOTTOM=1 (north row first) and the reader
// assumes that layout; it does not read bottom-up (south-to-north)
// SAGA grids.
func sgrdPath(sdatPath string) string {
	return strings.TrimSuffix(sdatPath, ".sdat") + ".sgrd"
}

func readSDAT(path string) (*grid.GridStore, error) {
	hf, err := os.Open(sgrdPath(path))
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	defer hf.Close()

	header := map[string]string{}
	scanner := bufio.NewScanner(hf)
	for scanner.Scan() {
		idx := strings.Index(scanner.Text(), "=")
		if idx < 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(scanner.Text()[:idx]))
		val := strings.TrimSpace(scanner.Text()[idx+1:])
		header[key] = val
	}

	rows, err := sdatInt(header, "NROWS")
	if err != nil {
		return nil, err
	}
	cols, err := sdatInt(header, "NCOLS")
	if err != nil {
		return nil, err
	}
	cellsize, err := sdatFloat(header, "CELLSIZE")
	if err != nil {
		return nil, err
	}
	xmin, err := sdatFloat(header, "POSITION_XMIN")
	if err != nil {
		return nil, err
	}
	ymin, err := sdatFloat(header, "POSITION_YMIN")
	if err != nil {
		return nil, err
	}
	nodata, err := sdatFloat(header, "NODATA_VALUE")
	if err != nil {
		nodata = -99999
	}

	south := ymin
	north := ymin + float64(rows)*cellsize
	west := xmin
	east := xmin + float64(cols)*cellsize

	g := grid.New(rows, cols, north, south, east, west, nodata)
	g.ResolutionX = cellsize
	g.ResolutionY = cellsize

	bf, err := os.Open(path)
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	defer bf.Close()

	buf := make([]byte, 8)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if _, err := readFull(bf, buf); err != nil {
				return nil, wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
			}
			bits := binary.LittleEndian.Uint64(buf)
			g.Set(r, c, math.Float64frombits(bits))
		}
	}
	return g, nil
}

func writeSDAT(path string, g *grid.GridStore) error {
	if g == nil {
		return wberr.New(wberr.InvalidParam, "rasterio.sdat", "grid is nil")
	}
	hf, err := os.Create(sgrdPath(path))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	defer hf.Close()

	fmt.Fprintf(hf, "NCOLS\t=\t%d\n", g.Columns)
	fmt.Fprintf(hf, "NROWS\t=\t%d\n", g.Rows)
	fmt.Fprintf(hf, "CELLSIZE\t=\t%v\n", g.ResolutionX)
	fmt.Fprintf(hf, "POSITION_XMIN\t=\t%v\n", g.West)
	fmt.Fprintf(hf, "POSITION_YMIN\t=\t%v\n", g.South)
	fmt.Fprintf(hf, "NODATA_VALUE\t=\t%v\n", g.NoData)
	fmt.Fprintf(hf, "DATAFORMAT\t=\tDOUBLE\n")
	fmt.Fprintf(hf, "BYTEORDER_BIG\t=\t0\n")
	fmt.Fprintf(hf, "TOPTOBOTTOM\t=\t1\n")

	bf, err := os.Create(path)
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	defer bf.Close()
	w := bufio.NewWriter(bf)
	buf := make([]byte, 8)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(g.Get(r, c)))
			if _, err := w.Write(buf); err != nil {
				return wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
			}
		}
	}
	return w.Flush()
}

func sdatInt(header map[string]string, key string) (int, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.sdat", "missing header field: "+key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	return n, nil
}

func sdatFloat(header map[string]string, key string) (float64, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.sdat", "missing header field: "+key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.sdat", err)
	}
	return f, nil
}
