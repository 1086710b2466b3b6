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

// A Whitebox .dep pairs an ASCII key:value header with a sibling .tas
// file holding the cell values as little-endian float64, row-major
// from the north-west corner. dataFilePath derives the .tas path from
// the .dep header path the same way the tool suite does.
func dataFilePath(depPath string) string {
	return strings.TrimSuffix(depPath, ".dep") + ".tas"
}

func readDep(path string) (*grid.GridStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	defer f.Close()

	header := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		val := strings.TrimSpace(line[idx+1:])
		header[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}

	rows, err := headerInt(header, "rows")
	if err != nil {
		return nil, err
	}
	cols, err := headerInt(header, "cols")
	if err != nil {
		return nil, err
	}
	north, err := headerFloat(header, "north")
	if err != nil {
		return nil, err
	}
	south, err := headerFloat(header, "south")
	if err != nil {
		return nil, err
	}
	east, err := headerFloat(header, "east")
	if err != nil {
		return nil, err
	}
	west, err := headerFloat(header, "west")
	if err != nil {
		return nil, err
	}
	nodata, err := headerFloat(header, "nodata")
	if err != nil {
		nodata = -32768
	}

	g := grid.New(rows, cols, north, south, east, west, nodata)
	if proj, ok := header["xy units"]; ok {
		g.IsGeographic = strings.EqualFold(proj, "degrees")
	}
	if pal, ok := header["palette"]; ok {
		g.Palette = pal
	}

	body, err := os.Open(dataFilePath(path))
	if err != nil {
		return nil, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	defer body.Close()

	buf := make([]byte, 8)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if _, err := readFull(body, buf); err != nil {
				return nil, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
			}
			bits := binary.LittleEndian.Uint64(buf)
			g.Set(r, c, math.Float64frombits(bits))
		}
	}
	return g, nil
}

func writeDep(path string, g *grid.GridStore) error {
	if g == nil {
		return wberr.New(wberr.InvalidParam, "rasterio.dep", "grid is nil")
	}
	hf, err := os.Create(path)
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	defer hf.Close()

	min, max, _ := g.MinMax()
	xyUnits := "meters"
	if g.IsGeographic {
		xyUnits = "degrees"
	}
	fmt.Fprintf(hf, "Min:\t%v\n", min)
	fmt.Fprintf(hf, "Max:\t%v\n", max)
	fmt.Fprintf(hf, "North:\t%v\n", g.North)
	fmt.Fprintf(hf, "South:\t%v\n", g.South)
	fmt.Fprintf(hf, "East:\t%v\n", g.East)
	fmt.Fprintf(hf, "West:\t%v\n", g.West)
	fmt.Fprintf(hf, "Cols:\t%d\n", g.Columns)
	fmt.Fprintf(hf, "Rows:\t%d\n", g.Rows)
	fmt.Fprintf(hf, "Data Type:\tfloat\n")
	fmt.Fprintf(hf, "Byte Order:\tLITTLE_ENDIAN\n")
	fmt.Fprintf(hf, "Nodata:\t%v\n", g.NoData)
	fmt.Fprintf(hf, "XY Units:\t%s\n", xyUnits)
	fmt.Fprintf(hf, "Palette:\t%s\n", g.Palette)

	bf, err := os.Create(dataFilePath(path))
	if err != nil {
		return wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	defer bf.Close()
	w := bufio.NewWriter(bf)
	buf := make([]byte, 8)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(g.Get(r, c)))
			if _, err := w.Write(buf); err != nil {
				return wberr.Wrap(wberr.IoError, "rasterio.dep", err)
			}
		}
	}
	return w.Flush()
}

func headerInt(header map[string]string, key string) (int, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.dep", "missing header field: "+key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	return n, nil
}

func headerFloat(header map[string]string, key string) (float64, error) {
	v, ok := header[key]
	if !ok {
		return 0, wberr.New(wberr.IoError, "rasterio.dep", "missing header field: "+key)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, wberr.Wrap(wberr.IoError, "rasterio.dep", err)
	}
	return f, nil
}

// readFull reads exactly len(buf) bytes, treating a short read as a
// truncated-file IoError rather than silently returning partial data.
func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
